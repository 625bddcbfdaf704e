package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/salespulse/salespulse-go/internal/models"
	"github.com/salespulse/salespulse-go/internal/services"
	"github.com/salespulse/salespulse-go/internal/utils"
)

type ForecastHandler struct {
	forecast *services.ForecastService
}

func NewForecastHandler(forecast *services.ForecastService) *ForecastHandler {
	return &ForecastHandler{forecast: forecast}
}

// ForecastResponse wraps a projection for the forecast chart.
type ForecastResponse struct {
	Data      []models.ForecastPoint `json:"data"`
	ModelID   string                 `json:"model_id"`
	Periods   int                    `json:"periods"`
	Timestamp time.Time              `json:"timestamp"`
}

// GetModels handles GET /api/v1/forecast/models.
func (h *ForecastHandler) GetModels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.forecast.Models()})
}

// Project handles POST /api/v1/forecast/project.
func (h *ForecastHandler) Project(c *gin.Context) {
	var req models.ForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, utils.NewValidationError(err.Error()))
		return
	}

	points, err := h.forecast.Project(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ForecastResponse{
		Data:      points,
		ModelID:   req.ModelID,
		Periods:   len(points),
		Timestamp: time.Now(),
	})
}

// CreateSnapshot handles POST /api/v1/forecast/snapshots.
func (h *ForecastHandler) CreateSnapshot(c *gin.Context) {
	var req models.ForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, utils.NewValidationError(err.Error()))
		return
	}

	snapshot, err := h.forecast.SaveSnapshot(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, snapshot)
}

// GetSnapshot handles GET /api/v1/forecast/snapshots/:id.
func (h *ForecastHandler) GetSnapshot(c *gin.Context) {
	snapshot, err := h.forecast.GetSnapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// ListSnapshots handles GET /api/v1/forecast/snapshots.
func (h *ForecastHandler) ListSnapshots(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, utils.NewValidationErrorf("invalid limit %q", raw))
			return
		}
		limit = parsed
	}

	snapshots, err := h.forecast.ListSnapshots(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": snapshots, "total": len(snapshots)})
}

// DeleteSnapshot handles DELETE /api/v1/forecast/snapshots/:id.
func (h *ForecastHandler) DeleteSnapshot(c *gin.Context) {
	if err := h.forecast.DeleteSnapshot(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
