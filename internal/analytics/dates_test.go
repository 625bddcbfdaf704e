package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salespulse/salespulse-go/internal/models"
	"github.com/salespulse/salespulse-go/internal/utils"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDateSeries(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		count    int
		interval models.Interval
		expected []time.Time
	}{
		{
			name:     "daily",
			start:    date(2024, time.March, 30),
			count:    4,
			interval: models.IntervalDay,
			expected: []time.Time{
				date(2024, time.March, 30),
				date(2024, time.March, 31),
				date(2024, time.April, 1),
				date(2024, time.April, 2),
			},
		},
		{
			name:     "weekly",
			start:    date(2024, time.January, 1),
			count:    3,
			interval: models.IntervalWeek,
			expected: []time.Time{
				date(2024, time.January, 1),
				date(2024, time.January, 8),
				date(2024, time.January, 15),
			},
		},
		{
			name:     "monthly",
			start:    date(2024, time.January, 1),
			count:    3,
			interval: models.IntervalMonth,
			expected: []time.Time{
				date(2024, time.January, 1),
				date(2024, time.February, 1),
				date(2024, time.March, 1),
			},
		},
		{
			name:     "monthly carries day-of-month across February",
			start:    date(2024, time.January, 31),
			count:    3,
			interval: models.IntervalMonth,
			expected: []time.Time{
				date(2024, time.January, 31),
				// Feb 31 does not exist; calendar arithmetic carries
				// into March (2024 is a leap year, so Feb 31 = Mar 2).
				date(2024, time.March, 2),
				date(2024, time.April, 2),
			},
		},
		{
			name:     "zero count",
			start:    date(2024, time.January, 1),
			count:    0,
			interval: models.IntervalDay,
			expected: []time.Time{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DateSeries(tc.start, tc.count, tc.interval)
			require.NoError(t, err)
			require.Len(t, got, len(tc.expected))
			for i := range tc.expected {
				assert.True(t, tc.expected[i].Equal(got[i]), "index %d: expected %v, got %v", i, tc.expected[i], got[i])
			}
		})
	}
}

func TestDateSeries_StrictlyIncreasing(t *testing.T) {
	for _, interval := range []models.Interval{models.IntervalDay, models.IntervalWeek, models.IntervalMonth} {
		got, err := DateSeries(date(2023, time.November, 15), 36, interval)
		require.NoError(t, err)
		require.Len(t, got, 36)
		for i := 1; i < len(got); i++ {
			assert.True(t, got[i].After(got[i-1]), "%s series not strictly increasing at %d", interval, i)
		}
	}
}

func TestDateSeries_NegativeCount(t *testing.T) {
	_, err := DateSeries(date(2024, time.January, 1), -1, models.IntervalDay)
	require.Error(t, err)
	assert.True(t, utils.IsValidationError(err))
}

func TestDateSeries_UnknownInterval(t *testing.T) {
	_, err := DateSeries(date(2024, time.January, 1), 5, models.Interval("fortnight"))
	require.Error(t, err)
	assert.True(t, utils.IsValidationError(err))
}
