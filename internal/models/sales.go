package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Interval is the calendar step between consecutive series points.
type Interval string

const (
	IntervalDay   Interval = "day"
	IntervalWeek  Interval = "week"
	IntervalMonth Interval = "month"
)

// Valid reports whether the interval is one of the supported calendar steps.
func (i Interval) Valid() bool {
	switch i {
	case IntervalDay, IntervalWeek, IntervalMonth:
		return true
	}
	return false
}

// SalesDataPoint represents one period of synthetic sales activity.
// Profit is always Revenue - Costs exactly; the generator derives it rather
// than sampling it independently.
type SalesDataPoint struct {
	Date             time.Time `json:"date"`
	Revenue          float64   `json:"revenue"`
	Costs            float64   `json:"costs"`
	Profit           float64   `json:"profit"`
	TransactionCount int       `json:"transaction_count"`
	MarketingSpend   float64   `json:"marketing_spend"`
}

// SalesSummary aggregates a series for the dashboard summary cards.
type SalesSummary struct {
	PeriodStart         time.Time       `json:"period_start"`
	PeriodEnd           time.Time       `json:"period_end"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	TotalCosts          decimal.Decimal `json:"total_costs"`
	TotalProfit         decimal.Decimal `json:"total_profit"`
	TotalTransactions   int64           `json:"total_transactions"`
	TotalMarketingSpend decimal.Decimal `json:"total_marketing_spend"`
	ProfitMargin        decimal.Decimal `json:"profit_margin"`
	AvgTransactionValue decimal.Decimal `json:"avg_transaction_value"`
}

// SeriesRequest describes a synthetic series to generate.
type SeriesRequest struct {
	Start    time.Time `json:"start" form:"start" time_format:"2006-01-02"`
	Count    int       `json:"count" form:"count"`
	Interval Interval  `json:"interval" form:"interval"`
	Seed     int64     `json:"seed" form:"seed"`
}

// SortDirection orders transaction listings.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// TransactionQuery is the serializable filter/sort/paginate configuration for
// transaction listings. It is passed explicitly into the service layer; there
// is no ambient query state.
type TransactionQuery struct {
	SeriesRequest
	From       *time.Time    `json:"from,omitempty" form:"from" time_format:"2006-01-02"`
	To         *time.Time    `json:"to,omitempty" form:"to" time_format:"2006-01-02"`
	MinRevenue *float64      `json:"min_revenue,omitempty" form:"min_revenue"`
	MaxRevenue *float64      `json:"max_revenue,omitempty" form:"max_revenue"`
	SortBy     string        `json:"sort_by" form:"sort_by"`
	SortDir    SortDirection `json:"sort_dir" form:"sort_dir"`
	Page       int           `json:"page" form:"page"`
	Limit      int           `json:"limit" form:"limit"`
}

// TransactionPage is one page of a filtered transaction listing.
type TransactionPage struct {
	Data  []SalesDataPoint `json:"data"`
	Total int              `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// TrendlinePoint pairs a series date with its smoothed revenue value.
type TrendlinePoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}
