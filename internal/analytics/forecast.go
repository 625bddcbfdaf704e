package analytics

import (
	"math"
	"time"

	"github.com/salespulse/salespulse-go/internal/models"
	"github.com/salespulse/salespulse-go/internal/utils"
)

// Base uncertainty of the first projected point; each further step into the
// future widens the band by widthPerStep of the projected value.
const (
	baseBandWidth = 0.05
	widthPerStep  = 0.01
)

// Project extends history forward by periods points, continuing the given
// interval from the last historical date. The regression over the revenue
// series supplies the base line; the named model shapes it; the band widens
// linearly with distance into the future and never narrows, even where a
// seasonal adjustment pulls the value down. The first projected point sits
// one interval after history's end, and the output always holds exactly
// periods points, all flagged as projected.
func Project(history []models.SalesDataPoint, interval models.Interval, modelID string, periods int, params map[string]float64) ([]models.ForecastPoint, error) {
	if len(history) == 0 {
		return nil, utils.NewValidationError("history must not be empty")
	}
	if periods < 0 {
		return nil, utils.NewValidationErrorf("periods must be non-negative, got %d", periods)
	}
	if !interval.Valid() {
		return nil, utils.NewValidationErrorf("unknown interval %q", interval)
	}
	model, ok := models.ModelByID(modelID)
	if !ok {
		return nil, utils.NewValidationErrorf("unknown model %q", modelID)
	}

	fit := FitRevenue(history)
	lastDate := history[len(history)-1].Date
	historyLen := len(history)

	points := make([]models.ForecastPoint, 0, periods)
	date := lastDate
	var prevWidth float64
	for offset := 1; offset <= periods; offset++ {
		date = NextDate(date, interval)

		x := float64(historyLen - 1 + offset)
		value := fit.Intercept + fit.Slope*x
		value = adjustForModel(value, model, params, date, offset, periods)

		// The width scales with the magnitude of the projected value,
		// never its sign, and is carried forward so a seasonal dip
		// (Q4 into Q1) cannot narrow the band mid-horizon.
		width := math.Abs(value) * (baseBandWidth + widthPerStep*float64(offset))
		if width < prevWidth {
			width = prevWidth
		}
		prevWidth = width

		points = append(points, models.ProjectedPoint(date, value, value-width, value+width, modelID))
	}
	return points, nil
}

// adjustForModel applies the model-specific shaping on top of the regression
// base value.
func adjustForModel(value float64, model models.ForecastModel, params map[string]float64, date time.Time, offset, periods int) float64 {
	switch model.ID {
	case models.ModelLinear:
		seasonality := paramOr(params, model, "seasonality")
		growth := paramOr(params, model, "growth")
		// Scale the distance of the quarter factor from 1 by the
		// seasonality strength, so 0 flattens it and 2 doubles it.
		qf := quarterFactor(date)
		return value * (1 + (qf-1)*seasonality) * growth

	case models.ModelExponential:
		growthRate := paramOr(params, model, "growthRate")
		saturation := paramOr(params, model, "saturation")
		compounded := math.Pow(1+growthRate, float64(offset))
		progress := float64(offset) / float64(2*periods)
		dampening := 1 - progress*progress*(1-saturation)
		return value * compounded * dampening

	case models.ModelSeasonal:
		switch date.Month() {
		case time.January, time.February, time.March:
			return value * paramOr(params, model, "q1Factor")
		case time.October, time.November, time.December:
			return value * paramOr(params, model, "q4Factor")
		default:
			return value
		}
	}
	return value
}

// quarterFactor is the deterministic midpoint of the generator's seasonal
// bands, used when the caller scales seasonality rather than sampling it.
func quarterFactor(date time.Time) float64 {
	switch date.Month() {
	case time.October, time.November, time.December:
		return 1.25
	case time.January, time.February, time.March:
		return 0.85
	default:
		return 1.0
	}
}

func paramOr(params map[string]float64, model models.ForecastModel, name string) float64 {
	if v, ok := params[name]; ok {
		return v
	}
	return model.Param(name, 1)
}

// WithHistory prefixes a projection with its historical points, the shape the
// forecast chart consumes: actuals with collapsed bands followed by the
// projected tail.
func WithHistory(history []models.SalesDataPoint, projection []models.ForecastPoint) []models.ForecastPoint {
	out := make([]models.ForecastPoint, 0, len(history)+len(projection))
	for _, p := range history {
		out = append(out, models.HistoricalPoint(p.Date, p.Revenue))
	}
	return append(out, projection...)
}
