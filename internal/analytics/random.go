// Package analytics implements the synthetic sales data generators and the
// regression/forecast pipeline behind the dashboard API. Everything here is a
// pure computation over its arguments; the only state is the pseudo-random
// source, which callers inject so tests stay deterministic.
package analytics

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/salespulse/salespulse-go/internal/utils"
)

// Source produces the bounded random numbers that inject variability into
// synthetic series. Implementations must be safe for concurrent use.
type Source interface {
	// IntBetween returns an integer in [min, max] inclusive.
	IntBetween(min, max int) int
	// FloatBetween returns a float in [min, max] rounded to decimals places.
	FloatBetween(min, max float64, decimals int) float64
}

type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSource returns a seeded Source. The same seed yields the same stream,
// which is what the deterministic tests and the session-stable series cache
// rely on.
func NewSource(seed int64) Source {
	return &lockedSource{rng: rand.New(rand.NewSource(seed))}
}

// NewTimeSource returns a Source seeded from the current time.
func NewTimeSource() Source {
	return NewSource(time.Now().UnixNano())
}

func (s *lockedSource) IntBetween(min, max int) int {
	if min > max {
		min, max = max, min
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.rng.Intn(max-min+1)
}

func (s *lockedSource) FloatBetween(min, max float64, decimals int) float64 {
	if min > max {
		min, max = max, min
	}
	s.mu.Lock()
	v := min + s.rng.Float64()*(max-min)
	s.mu.Unlock()

	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}

// Choice returns a uniformly chosen element of items.
func Choice[T any](src Source, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, utils.NewValidationError("cannot choose from an empty sequence")
	}
	return items[src.IntBetween(0, len(items)-1)], nil
}
