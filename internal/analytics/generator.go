package analytics

import (
	"math"
	"time"

	"github.com/salespulse/salespulse-go/internal/models"
)

// Generator produces synthetic historical sales series. One Generator holds
// one random source; the regime parameters (base revenue, cost ratio, and so
// on) are re-drawn per series, not per Generator.
type Generator struct {
	src Source
}

// NewGenerator creates a Generator backed by the given random source.
func NewGenerator(src Source) *Generator {
	return &Generator{src: src}
}

// GenerateSeries produces count SalesDataPoints starting at start, one per
// interval step. Base magnitudes are drawn once and held constant across the
// series; each point then combines the seasonal, weekday, and trend factors
// with an independent jitter. Every monetary output is rounded to whole
// currency units, and profit is derived as revenue - costs after rounding so
// the invariant holds exactly.
func (g *Generator) GenerateSeries(start time.Time, count int, interval models.Interval) ([]models.SalesDataPoint, error) {
	dates, err := DateSeries(start, count, interval)
	if err != nil {
		return nil, err
	}

	// Regime parameters for the whole series.
	baseRevenue := g.src.FloatBetween(50000, 150000, 0)
	costRatio := g.src.FloatBetween(0.55, 0.75, 2)
	baseTransactions := float64(g.src.IntBetween(800, 2500))
	marketingRatio := g.src.FloatBetween(0.08, 0.15, 2)
	annualGrowth := g.src.FloatBetween(0.05, 0.25, 2)
	perStep := growthPerStep(annualGrowth, count)

	series := make([]models.SalesDataPoint, 0, count)
	for i, date := range dates {
		season := seasonalFactor(g.src, date)
		weekday := weekdayFactor(g.src, date)
		trend := trendFactor(perStep, i)

		revenueJitter := g.src.FloatBetween(0.92, 1.08, 3)
		costJitter := g.src.FloatBetween(0.95, 1.05, 3)
		txJitter := g.src.FloatBetween(0.90, 1.10, 3)
		marketingJitter := g.src.FloatBetween(0.85, 1.15, 3)

		revenue := math.Round(baseRevenue * season * weekday * trend * revenueJitter)
		costs := math.Round(baseRevenue * costRatio * season * trend * costJitter)
		transactions := int(math.Round(baseTransactions * season * weekday * trend * txJitter))
		marketing := math.Round(baseRevenue * marketingRatio * trend * marketingJitter)

		series = append(series, models.SalesDataPoint{
			Date:             date,
			Revenue:          revenue,
			Costs:            costs,
			Profit:           revenue - costs,
			TransactionCount: transactions,
			MarketingSpend:   marketing,
		})
	}
	return series, nil
}
