package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeasonalFactor(t *testing.T) {
	src := NewSource(11)

	tests := []struct {
		name  string
		month time.Month
		min   float64
		max   float64
	}{
		{name: "Q4 boosted", month: time.November, min: 1.15, max: 1.35},
		{name: "Q1 depressed", month: time.February, min: 0.75, max: 0.90},
		{name: "Q2 near one", month: time.May, min: 0.95, max: 1.08},
		{name: "Q3 near one", month: time.August, min: 0.95, max: 1.08},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for i := 0; i < 200; i++ {
				f := seasonalFactor(src, date(2024, tc.month, 10))
				assert.GreaterOrEqual(t, f, tc.min)
				assert.LessOrEqual(t, f, tc.max)
			}
		})
	}
}

func TestWeekdayFactor(t *testing.T) {
	src := NewSource(12)

	saturday := date(2024, time.June, 1)
	monday := date(2024, time.June, 3)

	for i := 0; i < 200; i++ {
		weekend := weekdayFactor(src, saturday)
		assert.GreaterOrEqual(t, weekend, 0.80)
		assert.LessOrEqual(t, weekend, 1.25)

		weekday := weekdayFactor(src, monday)
		assert.GreaterOrEqual(t, weekday, 0.95)
		assert.LessOrEqual(t, weekday, 1.05)
	}
}

func TestTrendFactor_CompoundsTowardAnnualGrowth(t *testing.T) {
	const rate = 0.20
	const n = 24

	perStep := growthPerStep(rate, n)

	assert.InDelta(t, 1.0, trendFactor(perStep, 0), 1e-12, "series starts at factor 1")
	assert.InDelta(t, 1+rate, trendFactor(perStep, n), 1e-9, "series compounds to 1+rate at i=N")

	// Monotonically increasing for positive growth.
	prev := 0.0
	for i := 0; i <= n; i++ {
		f := trendFactor(perStep, i)
		assert.Greater(t, f, prev)
		prev = f
	}
}

func TestGrowthPerStep_DegenerateLength(t *testing.T) {
	assert.Equal(t, 1.0, growthPerStep(0.2, 0))
	assert.False(t, math.IsNaN(growthPerStep(0.2, -3)))
}
