package analytics

import (
	"math"
	"time"
)

// seasonalFactor returns the quarter-based multiplicative adjustment: Q4 gets
// a holiday boost, Q1 the post-holiday slump, Q2/Q3 hover near 1.
func seasonalFactor(src Source, date time.Time) float64 {
	switch date.Month() {
	case time.October, time.November, time.December:
		return src.FloatBetween(1.15, 1.35, 3)
	case time.January, time.February, time.March:
		return src.FloatBetween(0.75, 0.90, 3)
	default:
		return src.FloatBetween(0.95, 1.08, 3)
	}
}

// weekdayFactor returns the day-of-week adjustment. Weekends swing wider than
// weekdays in both directions.
func weekdayFactor(src Source, date time.Time) float64 {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return src.FloatBetween(0.80, 1.25, 3)
	default:
		return src.FloatBetween(0.95, 1.05, 3)
	}
}

// growthPerStep converts an annual growth rate into the per-step compounding
// base for a series of n points, so trendFactor compounds smoothly from 1.0
// at the first point toward (1+rate) at the last.
func growthPerStep(rate float64, n int) float64 {
	if n <= 0 {
		return 1
	}
	return math.Pow(1+rate, 1/float64(n))
}

// trendFactor returns the compounded growth adjustment at position i.
func trendFactor(perStep float64, i int) float64 {
	return math.Pow(perStep, float64(i))
}
