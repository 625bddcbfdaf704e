package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/salespulse/salespulse-go/internal/models"
	"github.com/salespulse/salespulse-go/internal/services"
	"github.com/salespulse/salespulse-go/internal/utils"
)

type SalesHandler struct {
	sales *services.SalesService
}

func NewSalesHandler(sales *services.SalesService) *SalesHandler {
	return &SalesHandler{sales: sales}
}

// SeriesResponse wraps a generated series for the charts.
type SeriesResponse struct {
	Data      []models.SalesDataPoint `json:"data"`
	Total     int                     `json:"total"`
	Timestamp time.Time               `json:"timestamp"`
}

// GetSeries handles GET /api/v1/sales/series.
func (h *SalesHandler) GetSeries(c *gin.Context) {
	req, err := bindSeriesRequest(c)
	if err != nil {
		respondError(c, err)
		return
	}

	series, err := h.sales.GetSeries(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SeriesResponse{
		Data:      series,
		Total:     len(series),
		Timestamp: time.Now(),
	})
}

// GetSummary handles GET /api/v1/sales/summary.
func (h *SalesHandler) GetSummary(c *gin.Context) {
	req, err := bindSeriesRequest(c)
	if err != nil {
		respondError(c, err)
		return
	}

	summary, err := h.sales.Summary(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetTrendline handles GET /api/v1/sales/trendline.
func (h *SalesHandler) GetTrendline(c *gin.Context) {
	req, err := bindSeriesRequest(c)
	if err != nil {
		respondError(c, err)
		return
	}

	period := 6
	if raw := c.Query("period"); raw != "" {
		period, err = strconv.Atoi(raw)
		if err != nil {
			respondError(c, utils.NewValidationErrorf("invalid period %q", raw))
			return
		}
	}

	points, err := h.sales.Trendline(c.Request.Context(), req, period)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": points, "period": period})
}

// GetTransactions handles GET /api/v1/sales/transactions.
func (h *SalesHandler) GetTransactions(c *gin.Context) {
	query, err := bindTransactionQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	page, err := h.sales.Transactions(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ExportCSV handles GET /api/v1/sales/export.
func (h *SalesHandler) ExportCSV(c *gin.Context) {
	req, err := bindSeriesRequest(c)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("sales-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.sales.ExportCSV(c.Request.Context(), req, c.Writer); err != nil {
		respondError(c, err)
		return
	}
}

// bindSeriesRequest reads the shared series query parameters.
func bindSeriesRequest(c *gin.Context) (models.SeriesRequest, error) {
	var req models.SeriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return models.SeriesRequest{}, utils.NewValidationError(err.Error())
	}
	return req, nil
}

// bindTransactionQuery reads the listing filters on top of the series
// parameters. The optional filters are parsed by hand so absent parameters
// stay nil instead of zero.
func bindTransactionQuery(c *gin.Context) (models.TransactionQuery, error) {
	series, err := bindSeriesRequest(c)
	if err != nil {
		return models.TransactionQuery{}, err
	}

	query := models.TransactionQuery{
		SeriesRequest: series,
		SortBy:        c.DefaultQuery("sort_by", "date"),
		SortDir:       models.SortDirection(c.DefaultQuery("sort_dir", string(models.SortAsc))),
	}

	if query.From, err = optionalDate(c, "from"); err != nil {
		return models.TransactionQuery{}, err
	}
	if query.To, err = optionalDate(c, "to"); err != nil {
		return models.TransactionQuery{}, err
	}
	if query.MinRevenue, err = optionalFloat(c, "min_revenue"); err != nil {
		return models.TransactionQuery{}, err
	}
	if query.MaxRevenue, err = optionalFloat(c, "max_revenue"); err != nil {
		return models.TransactionQuery{}, err
	}
	if query.Page, err = optionalInt(c, "page"); err != nil {
		return models.TransactionQuery{}, err
	}
	if query.Limit, err = optionalInt(c, "limit"); err != nil {
		return models.TransactionQuery{}, err
	}
	return query, nil
}

func optionalDate(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, utils.NewValidationErrorf("invalid %s date %q, expected YYYY-MM-DD", name, raw)
	}
	return &parsed, nil
}

func optionalFloat(c *gin.Context, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, utils.NewValidationErrorf("invalid %s value %q", name, raw)
	}
	return &parsed, nil
}

func optionalInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, utils.NewValidationErrorf("invalid %s value %q", name, raw)
	}
	return parsed, nil
}
