package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salespulse/salespulse-go/internal/cache"
	"github.com/salespulse/salespulse-go/internal/config"
	"github.com/salespulse/salespulse-go/internal/models"
	"github.com/salespulse/salespulse-go/internal/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		LogLevel:    "error",
		Generator: config.GeneratorConfig{
			Seed:            42,
			DefaultCount:    24,
			DefaultInterval: "month",
			MaxCount:        1096,
		},
		Forecast: config.ForecastConfig{
			DefaultPeriods: 12,
			MaxPeriods:     60,
		},
	}
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func newSalesService(t *testing.T, withCache bool) *SalesService {
	t.Helper()
	var seriesCache *cache.RedisSeriesCache
	if withCache {
		server := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: server.Addr()})
		seriesCache = cache.NewRedisSeriesCache(client, time.Minute)
	}
	return NewSalesService(testConfig(), seriesCache, testLogger())
}

func monthlyRequest() models.SeriesRequest {
	return models.SeriesRequest{
		Start:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Count:    24,
		Interval: models.IntervalMonth,
		Seed:     42,
	}
}

func TestSalesService_GetSeries(t *testing.T) {
	svc := newSalesService(t, false)

	series, err := svc.GetSeries(context.Background(), monthlyRequest())
	require.NoError(t, err)
	require.Len(t, series, 24)

	for i, p := range series {
		assert.Equal(t, p.Revenue-p.Costs, p.Profit, "point %d", i)
	}
	assert.True(t, series[0].Date.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, series[23].Date.Equal(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)))
}

func TestSalesService_GetSeries_Defaults(t *testing.T) {
	svc := newSalesService(t, false)

	series, err := svc.GetSeries(context.Background(), models.SeriesRequest{})
	require.NoError(t, err)
	assert.Len(t, series, 24, "config default_count applies")
}

func TestSalesService_GetSeries_Validation(t *testing.T) {
	svc := newSalesService(t, false)
	ctx := context.Background()

	_, err := svc.GetSeries(ctx, models.SeriesRequest{Count: -1})
	require.Error(t, err)
	assert.True(t, utils.IsValidationError(err))

	_, err = svc.GetSeries(ctx, models.SeriesRequest{Count: 2000})
	require.Error(t, err)
	assert.True(t, utils.IsValidationError(err))

	_, err = svc.GetSeries(ctx, models.SeriesRequest{Interval: "hour"})
	require.Error(t, err)
	assert.True(t, utils.IsValidationError(err))
}

func TestSalesService_GetSeries_CacheStability(t *testing.T) {
	svc := newSalesService(t, true)
	ctx := context.Background()

	// Seed 0 falls back to the config seed here, but even a time-seeded
	// series must stay stable across calls while cached.
	req := monthlyRequest()
	first, err := svc.GetSeries(ctx, req)
	require.NoError(t, err)
	second, err := svc.GetSeries(ctx, req)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Revenue, second[i].Revenue, "point %d", i)
	}
}

func TestSalesService_Summary(t *testing.T) {
	svc := newSalesService(t, false)

	summary, err := svc.Summary(context.Background(), monthlyRequest())
	require.NoError(t, err)

	series, err := svc.GetSeries(context.Background(), monthlyRequest())
	require.NoError(t, err)

	var wantRevenue, wantCosts float64
	for _, p := range series {
		wantRevenue += p.Revenue
		wantCosts += p.Costs
	}

	assert.Equal(t, wantRevenue, summary.TotalRevenue.InexactFloat64())
	assert.Equal(t, wantCosts, summary.TotalCosts.InexactFloat64())
	assert.True(t, summary.TotalProfit.Equal(summary.TotalRevenue.Sub(summary.TotalCosts)))
	assert.True(t, summary.PeriodStart.Equal(series[0].Date))
	assert.True(t, summary.PeriodEnd.Equal(series[len(series)-1].Date))
	assert.True(t, summary.ProfitMargin.LessThan(summary.TotalRevenue), "margin is a ratio, not a total")
}

func TestSalesService_Trendline(t *testing.T) {
	svc := newSalesService(t, false)

	points, err := svc.Trendline(context.Background(), monthlyRequest(), 6)
	require.NoError(t, err)
	assert.Len(t, points, 24-6+1, "SMA emits one value per full window")

	series, err := svc.GetSeries(context.Background(), monthlyRequest())
	require.NoError(t, err)
	assert.True(t, points[len(points)-1].Date.Equal(series[len(series)-1].Date),
		"trendline is aligned to the series tail")
}

func TestSalesService_Trendline_InvalidPeriod(t *testing.T) {
	svc := newSalesService(t, false)
	ctx := context.Background()

	_, err := svc.Trendline(ctx, monthlyRequest(), 1)
	require.Error(t, err)
	assert.True(t, utils.IsValidationError(err))

	_, err = svc.Trendline(ctx, monthlyRequest(), 25)
	require.Error(t, err)
	assert.True(t, utils.IsValidationError(err))
}

func TestSalesService_Transactions(t *testing.T) {
	svc := newSalesService(t, false)
	ctx := context.Background()

	page, err := svc.Transactions(ctx, models.TransactionQuery{
		SeriesRequest: monthlyRequest(),
		SortBy:        "revenue",
		SortDir:       models.SortDesc,
		Page:          1,
		Limit:         10,
	})
	require.NoError(t, err)

	assert.Equal(t, 24, page.Total)
	require.Len(t, page.Data, 10)
	for i := 1; i < len(page.Data); i++ {
		assert.GreaterOrEqual(t, page.Data[i-1].Revenue, page.Data[i].Revenue, "descending revenue order")
	}

	// Second page holds the next slice, and the last page is short.
	page3, err := svc.Transactions(ctx, models.TransactionQuery{
		SeriesRequest: monthlyRequest(),
		SortBy:        "revenue",
		SortDir:       models.SortDesc,
		Page:          3,
		Limit:         10,
	})
	require.NoError(t, err)
	assert.Len(t, page3.Data, 4)
}

func TestSalesService_Transactions_Filters(t *testing.T) {
	svc := newSalesService(t, false)
	ctx := context.Background()

	from := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	page, err := svc.Transactions(ctx, models.TransactionQuery{
		SeriesRequest: monthlyRequest(),
		From:          &from,
		To:            &to,
	})
	require.NoError(t, err)

	assert.Equal(t, 6, page.Total, "Jul through Dec 2024")
	for _, p := range page.Data {
		assert.False(t, p.Date.Before(from))
		assert.False(t, p.Date.After(to))
	}
}

func TestSalesService_Transactions_UnknownSortField(t *testing.T) {
	svc := newSalesService(t, false)

	_, err := svc.Transactions(context.Background(), models.TransactionQuery{
		SeriesRequest: monthlyRequest(),
		SortBy:        "velocity",
	})
	require.Error(t, err)
	assert.True(t, utils.IsValidationError(err))
}

func TestSalesService_ExportCSV(t *testing.T) {
	svc := newSalesService(t, false)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), monthlyRequest(), &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 25, "header plus 24 rows")

	assert.Equal(t, []string{"Date", "Revenue", "Costs", "Profit", "Transaction Count", "Marketing Spend"}, records[0])
	assert.Equal(t, "2024-01-01", records[1][0])
}
