package analytics

import (
	"github.com/salespulse/salespulse-go/internal/models"
)

// Fit performs an ordinary least-squares fit of values against their 0-based
// position index. A degenerate input never produces NaN or Inf: with no
// points the result is all zeros, and when the denominator vanishes the slope
// is forced to 0 and the intercept falls back to the mean.
func Fit(values []float64) models.RegressionResult {
	n := float64(len(values))
	if n == 0 {
		return models.RegressionResult{}
	}

	var sumX, sumY, sumXX, sumXY float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXX += x * x
		sumXY += x * y
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return models.RegressionResult{Intercept: sumY / n}
	}

	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n
	return models.RegressionResult{Slope: slope, Intercept: intercept}
}

// FitRevenue fits the series' revenue field against position index.
func FitRevenue(series []models.SalesDataPoint) models.RegressionResult {
	values := make([]float64, len(series))
	for i, p := range series {
		values[i] = p.Revenue
	}
	return Fit(values)
}
