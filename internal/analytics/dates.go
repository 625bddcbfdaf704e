package analytics

import (
	"time"

	"github.com/salespulse/salespulse-go/internal/models"
	"github.com/salespulse/salespulse-go/internal/utils"
)

// DateSeries returns count calendar dates beginning at start, each advanced by
// exactly one interval unit from its predecessor. Month stepping uses calendar
// arithmetic, so a Jan 31 start carries into early March when February is
// shorter, rather than pretending every month has 30 days.
func DateSeries(start time.Time, count int, interval models.Interval) ([]time.Time, error) {
	if count < 0 {
		return nil, utils.NewValidationErrorf("count must be non-negative, got %d", count)
	}
	if !interval.Valid() {
		return nil, utils.NewValidationErrorf("unknown interval %q", interval)
	}

	dates := make([]time.Time, 0, count)
	current := start
	for i := 0; i < count; i++ {
		dates = append(dates, current)
		current = NextDate(current, interval)
	}
	return dates, nil
}

// NextDate advances a date by one interval unit.
func NextDate(date time.Time, interval models.Interval) time.Time {
	switch interval {
	case models.IntervalDay:
		return date.AddDate(0, 0, 1)
	case models.IntervalWeek:
		return date.AddDate(0, 0, 7)
	case models.IntervalMonth:
		return date.AddDate(0, 1, 0)
	default:
		return date
	}
}
