package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/trend"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/salespulse/salespulse-go/internal/analytics"
	"github.com/salespulse/salespulse-go/internal/cache"
	"github.com/salespulse/salespulse-go/internal/config"
	"github.com/salespulse/salespulse-go/internal/models"
	"github.com/salespulse/salespulse-go/internal/utils"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 200
)

// SalesService produces the synthetic sales series behind the dashboard's
// charts and tables. The Redis cache is optional: without it every request
// regenerates, with it a session sees stable data until the TTL rolls over.
type SalesService struct {
	cfg    *config.Config
	cache  *cache.RedisSeriesCache
	logger *logrus.Logger
}

// NewSalesService creates a sales service. seriesCache may be nil when Redis
// is disabled.
func NewSalesService(cfg *config.Config, seriesCache *cache.RedisSeriesCache, logger *logrus.Logger) *SalesService {
	return &SalesService{
		cfg:    cfg,
		cache:  seriesCache,
		logger: logger,
	}
}

// Normalize fills request defaults from configuration and validates bounds.
func (s *SalesService) Normalize(req *models.SeriesRequest) error {
	if req.Count == 0 {
		req.Count = s.cfg.Generator.DefaultCount
	}
	if req.Count < 0 {
		return utils.NewValidationErrorf("count must be non-negative, got %d", req.Count)
	}
	if req.Count > s.cfg.Generator.MaxCount {
		return utils.NewValidationErrorf("count %d exceeds maximum %d", req.Count, s.cfg.Generator.MaxCount)
	}
	if req.Interval == "" {
		req.Interval = models.Interval(s.cfg.Generator.DefaultInterval)
	}
	if !req.Interval.Valid() {
		return utils.NewValidationErrorf("unknown interval %q", req.Interval)
	}
	if req.Seed == 0 {
		req.Seed = s.cfg.Generator.Seed
	}
	if req.Start.IsZero() {
		req.Start = defaultStart(req.Count, req.Interval)
	}
	return nil
}

// defaultStart anchors a series so its last point lands near today.
func defaultStart(count int, interval models.Interval) time.Time {
	now := time.Now().UTC().Truncate(24 * time.Hour)
	switch interval {
	case models.IntervalDay:
		return now.AddDate(0, 0, -(count - 1))
	case models.IntervalWeek:
		return now.AddDate(0, 0, -7*(count-1))
	default:
		firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return firstOfMonth.AddDate(0, -(count - 1), 0)
	}
}

// GetSeries returns the synthetic series for a request, from cache when
// possible.
func (s *SalesService) GetSeries(ctx context.Context, req models.SeriesRequest) ([]models.SalesDataPoint, error) {
	if err := s.Normalize(&req); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if series, ok := s.cache.Get(ctx, req); ok {
			return series, nil
		}
	}

	src := s.newSource(req.Seed)
	series, err := analytics.NewGenerator(src).GenerateSeries(req.Start, req.Count, req.Interval)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"start":    req.Start.Format("2006-01-02"),
		"count":    req.Count,
		"interval": req.Interval,
		"seed":     req.Seed,
	}).Debug("Generated sales series")

	if s.cache != nil {
		s.cache.Set(ctx, req, series)
	}
	return series, nil
}

func (s *SalesService) newSource(seed int64) analytics.Source {
	if seed != 0 {
		return analytics.NewSource(seed)
	}
	return analytics.NewTimeSource()
}

// Summary aggregates a series into the dashboard's headline figures.
func (s *SalesService) Summary(ctx context.Context, req models.SeriesRequest) (*models.SalesSummary, error) {
	series, err := s.GetSeries(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, utils.NewValidationError("cannot summarize an empty series")
	}

	totalRevenue := decimal.Zero
	totalCosts := decimal.Zero
	totalMarketing := decimal.Zero
	var totalTransactions int64
	for _, p := range series {
		totalRevenue = totalRevenue.Add(decimal.NewFromFloat(p.Revenue))
		totalCosts = totalCosts.Add(decimal.NewFromFloat(p.Costs))
		totalMarketing = totalMarketing.Add(decimal.NewFromFloat(p.MarketingSpend))
		totalTransactions += int64(p.TransactionCount)
	}
	totalProfit := totalRevenue.Sub(totalCosts)

	summary := &models.SalesSummary{
		PeriodStart:         series[0].Date,
		PeriodEnd:           series[len(series)-1].Date,
		TotalRevenue:        totalRevenue,
		TotalCosts:          totalCosts,
		TotalProfit:         totalProfit,
		TotalTransactions:   totalTransactions,
		TotalMarketingSpend: totalMarketing,
	}
	if totalRevenue.IsPositive() {
		summary.ProfitMargin = totalProfit.Div(totalRevenue).Round(4)
	}
	if totalTransactions > 0 {
		summary.AvgTransactionValue = totalRevenue.Div(decimal.NewFromInt(totalTransactions)).Round(2)
	}
	return summary, nil
}

// Trendline smooths the revenue series with a simple moving average, the
// overlay the dashboard draws on the revenue chart. The result is aligned to
// the dates of the last len(series)-period+1 points.
func (s *SalesService) Trendline(ctx context.Context, req models.SeriesRequest, period int) ([]models.TrendlinePoint, error) {
	series, err := s.GetSeries(ctx, req)
	if err != nil {
		return nil, err
	}
	if period < 2 {
		return nil, utils.NewValidationErrorf("trendline period must be at least 2, got %d", period)
	}
	if period > len(series) {
		return nil, utils.NewValidationErrorf("trendline period %d exceeds series length %d", period, len(series))
	}

	prices := make([]float64, len(series))
	for i, p := range series {
		prices[i] = p.Revenue
	}

	smaIndicator := trend.NewSmaWithPeriod[float64](period)
	smoothed := helper.ChanToSlice(smaIndicator.Compute(helper.SliceToChan(prices)))

	points := make([]models.TrendlinePoint, 0, len(smoothed))
	offset := len(series) - len(smoothed)
	for i, v := range smoothed {
		points = append(points, models.TrendlinePoint{
			Date:  series[offset+i].Date,
			Value: v,
		})
	}
	return points, nil
}

// Transactions returns one filtered, sorted, paginated page of the series.
// The whole query arrives as an explicit struct; nothing is read from ambient
// state.
func (s *SalesService) Transactions(ctx context.Context, query models.TransactionQuery) (*models.TransactionPage, error) {
	series, err := s.GetSeries(ctx, query.SeriesRequest)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.SalesDataPoint, 0, len(series))
	for _, p := range series {
		if query.From != nil && p.Date.Before(*query.From) {
			continue
		}
		if query.To != nil && p.Date.After(*query.To) {
			continue
		}
		if query.MinRevenue != nil && p.Revenue < *query.MinRevenue {
			continue
		}
		if query.MaxRevenue != nil && p.Revenue > *query.MaxRevenue {
			continue
		}
		filtered = append(filtered, p)
	}

	if err := sortTransactions(filtered, query.SortBy, query.SortDir); err != nil {
		return nil, err
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	startIdx := (page - 1) * limit
	endIdx := startIdx + limit
	if startIdx > len(filtered) {
		startIdx = len(filtered)
	}
	if endIdx > len(filtered) {
		endIdx = len(filtered)
	}

	return &models.TransactionPage{
		Data:  filtered[startIdx:endIdx],
		Total: len(filtered),
		Page:  page,
		Limit: limit,
	}, nil
}

func sortTransactions(series []models.SalesDataPoint, sortBy string, dir models.SortDirection) error {
	var less func(a, b models.SalesDataPoint) bool
	switch sortBy {
	case "", "date":
		less = func(a, b models.SalesDataPoint) bool { return a.Date.Before(b.Date) }
	case "revenue":
		less = func(a, b models.SalesDataPoint) bool { return a.Revenue < b.Revenue }
	case "costs":
		less = func(a, b models.SalesDataPoint) bool { return a.Costs < b.Costs }
	case "profit":
		less = func(a, b models.SalesDataPoint) bool { return a.Profit < b.Profit }
	case "transactions":
		less = func(a, b models.SalesDataPoint) bool { return a.TransactionCount < b.TransactionCount }
	default:
		return utils.NewValidationErrorf("unknown sort field %q", sortBy)
	}

	descending := dir == models.SortDesc
	sort.SliceStable(series, func(i, j int) bool {
		if descending {
			return less(series[j], series[i])
		}
		return less(series[i], series[j])
	})
	return nil
}

// csvColumns are the export fields in order; headers are title-cased from
// these names.
var csvColumns = []string{"date", "revenue", "costs", "profit", "transaction count", "marketing spend"}

// ExportCSV streams a series as CSV, the payload behind the dashboard's
// download button.
func (s *SalesService) ExportCSV(ctx context.Context, req models.SeriesRequest, w io.Writer) error {
	series, err := s.GetSeries(ctx, req)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	titler := cases.Title(language.English)

	header := make([]string, len(csvColumns))
	for i, col := range csvColumns {
		header[i] = titler.String(col)
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, p := range series {
		record := []string{
			p.Date.Format("2006-01-02"),
			strconv.FormatFloat(p.Revenue, 'f', -1, 64),
			strconv.FormatFloat(p.Costs, 'f', -1, 64),
			strconv.FormatFloat(p.Profit, 'f', -1, 64),
			strconv.Itoa(p.TransactionCount),
			strconv.FormatFloat(p.MarketingSpend, 'f', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
