package models

import (
	"fmt"
	"math"
	"time"
)

// Model identifiers understood by the forecast projector.
const (
	ModelLinear      = "linear"
	ModelExponential = "exponential"
	ModelSeasonal    = "seasonal"
)

// RegressionResult holds a least-squares fit over index-as-x.
type RegressionResult struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// ForecastPoint is one dated value of a forecast series. Historical points
// carry no uncertainty: Lower == Upper == Value and Projected is false.
type ForecastPoint struct {
	Date      time.Time `json:"date"`
	Value     float64   `json:"value"`
	Lower     float64   `json:"lower"`
	Upper     float64   `json:"upper"`
	ModelID   string    `json:"model_id,omitempty"`
	Projected bool      `json:"projected"`
}

// HistoricalPoint builds a ForecastPoint for an observed value. The band
// collapses to the value itself.
func HistoricalPoint(date time.Time, value float64) ForecastPoint {
	return ForecastPoint{
		Date:  date,
		Value: value,
		Lower: value,
		Upper: value,
	}
}

// ProjectedPoint builds a ForecastPoint for a projected value with its
// uncertainty band.
func ProjectedPoint(date time.Time, value, lower, upper float64, modelID string) ForecastPoint {
	return ForecastPoint{
		Date:      date,
		Value:     value,
		Lower:     lower,
		Upper:     upper,
		ModelID:   modelID,
		Projected: true,
	}
}

// ModelParameter is a tunable numeric knob of a forecast model. Value must
// stay within [Min, Max] and be an integral number of Steps from Min.
type ModelParameter struct {
	Name  string  `json:"name"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Step  float64 `json:"step"`
}

// ForecastModel describes one projection variant offered to the dashboard.
type ForecastModel struct {
	ID          string           `json:"id"`
	Label       string           `json:"label"`
	Description string           `json:"description"`
	Accuracy    float64          `json:"accuracy"`
	Parameters  []ModelParameter `json:"parameters"`
}

// SetParam updates a named parameter, rejecting values outside [Min, Max] or
// off the step grid. Bounds are enforced here at the boundary; the projector
// trusts whatever it is handed.
func (m *ForecastModel) SetParam(name string, value float64) error {
	for i := range m.Parameters {
		p := &m.Parameters[i]
		if p.Name != name {
			continue
		}
		if value < p.Min || value > p.Max {
			return fmt.Errorf("parameter %q value %g outside range [%g, %g]", name, value, p.Min, p.Max)
		}
		if p.Step > 0 {
			steps := (value - p.Min) / p.Step
			if math.Abs(steps-math.Round(steps)) > 1e-9 {
				return fmt.Errorf("parameter %q value %g is not a multiple of step %g from %g", name, value, p.Step, p.Min)
			}
		}
		p.Value = value
		return nil
	}
	return fmt.Errorf("unknown parameter %q", name)
}

// Param returns the current value of a named parameter, or its fallback when
// the model does not define it.
func (m *ForecastModel) Param(name string, fallback float64) float64 {
	for _, p := range m.Parameters {
		if p.Name == name {
			return p.Value
		}
	}
	return fallback
}

// DefaultModels returns the forecast model catalog with default parameter
// values. Callers mutate their own copy via SetParam.
func DefaultModels() []ForecastModel {
	return []ForecastModel{
		{
			ID:          ModelLinear,
			Label:       "Linear Trend",
			Description: "Least-squares trend with quarterly seasonality and a growth multiplier",
			Accuracy:    0.82,
			Parameters: []ModelParameter{
				{Name: "seasonality", Label: "Seasonality Strength", Value: 1.0, Min: 0, Max: 2, Step: 0.1},
				{Name: "growth", Label: "Growth Multiplier", Value: 1.0, Min: 0.5, Max: 1.5, Step: 0.05},
			},
		},
		{
			ID:          ModelExponential,
			Label:       "Exponential Growth",
			Description: "Compounding growth dampened by a saturation term",
			Accuracy:    0.74,
			Parameters: []ModelParameter{
				{Name: "growthRate", Label: "Growth Rate", Value: 0.05, Min: 0, Max: 0.2, Step: 0.01},
				{Name: "saturation", Label: "Saturation", Value: 0.8, Min: 0, Max: 1, Step: 0.05},
			},
		},
		{
			ID:          ModelSeasonal,
			Label:       "Seasonal Adjustment",
			Description: "Trend with tunable Q1 and Q4 quarter factors",
			Accuracy:    0.78,
			Parameters: []ModelParameter{
				{Name: "q1Factor", Label: "Q1 Factor", Value: 0.85, Min: 0.5, Max: 1, Step: 0.05},
				{Name: "q4Factor", Label: "Q4 Factor", Value: 1.25, Min: 1, Max: 1.5, Step: 0.05},
			},
		},
	}
}

// ModelByID looks up a model in the default catalog.
func ModelByID(id string) (ForecastModel, bool) {
	for _, m := range DefaultModels() {
		if m.ID == id {
			return m, true
		}
	}
	return ForecastModel{}, false
}

// ForecastRequest describes a projection run over a generated history.
type ForecastRequest struct {
	SeriesRequest
	ModelID        string             `json:"model_id"`
	Periods        int                `json:"periods"`
	Params         map[string]float64 `json:"params,omitempty"`
	IncludeHistory bool               `json:"include_history"`
}

// ForecastSnapshot is a persisted projection result, kept so a dashboard
// session can be shared or revisited.
type ForecastSnapshot struct {
	ID        string          `json:"id"`
	ModelID   string          `json:"model_id"`
	Periods   int             `json:"periods"`
	Interval  Interval        `json:"interval"`
	Points    []ForecastPoint `json:"points"`
	CreatedAt time.Time       `json:"created_at"`
}
