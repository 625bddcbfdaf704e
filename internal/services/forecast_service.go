package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/salespulse/salespulse-go/internal/analytics"
	"github.com/salespulse/salespulse-go/internal/config"
	"github.com/salespulse/salespulse-go/internal/database"
	"github.com/salespulse/salespulse-go/internal/models"
	"github.com/salespulse/salespulse-go/internal/utils"
)

// ForecastService runs projections over generated histories and manages
// persisted snapshots. The snapshot repository is optional; projection is
// fully functional without Postgres.
type ForecastService struct {
	cfg    *config.Config
	sales  *SalesService
	repo   *database.SnapshotRepository
	logger *logrus.Logger
}

// NewForecastService creates a forecast service. repo may be nil when the
// database is disabled.
func NewForecastService(cfg *config.Config, sales *SalesService, repo *database.SnapshotRepository, logger *logrus.Logger) *ForecastService {
	return &ForecastService{
		cfg:    cfg,
		sales:  sales,
		repo:   repo,
		logger: logger,
	}
}

// Models returns the forecast model catalog.
func (s *ForecastService) Models() []models.ForecastModel {
	return models.DefaultModels()
}

// validate normalizes the request and checks model, params, and periods at
// the boundary, so the projector below can trust its inputs.
func (s *ForecastService) validate(req *models.ForecastRequest) error {
	model, ok := models.ModelByID(req.ModelID)
	if !ok {
		return utils.NewValidationErrorf("unknown model %q", req.ModelID)
	}
	for name, value := range req.Params {
		if err := model.SetParam(name, value); err != nil {
			return utils.NewValidationError(err.Error())
		}
	}
	if req.Periods == 0 {
		req.Periods = s.cfg.Forecast.DefaultPeriods
	}
	if req.Periods < 0 {
		return utils.NewValidationErrorf("periods must be non-negative, got %d", req.Periods)
	}
	if req.Periods > s.cfg.Forecast.MaxPeriods {
		return utils.NewValidationErrorf("periods %d exceeds maximum %d", req.Periods, s.cfg.Forecast.MaxPeriods)
	}
	return nil
}

// Project generates the history for the request and extends it forward.
func (s *ForecastService) Project(ctx context.Context, req models.ForecastRequest) ([]models.ForecastPoint, error) {
	if err := s.validate(&req); err != nil {
		return nil, err
	}
	// Normalize here so req.Interval is concrete before the projector
	// continues it past the history.
	if err := s.sales.Normalize(&req.SeriesRequest); err != nil {
		return nil, err
	}

	history, err := s.sales.GetSeries(ctx, req.SeriesRequest)
	if err != nil {
		return nil, err
	}

	projection, err := analytics.Project(history, req.Interval, req.ModelID, req.Periods, req.Params)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"model":   req.ModelID,
		"periods": req.Periods,
		"history": len(history),
	}).Debug("Projected forecast")

	if req.IncludeHistory {
		return analytics.WithHistory(history, projection), nil
	}
	return projection, nil
}

// SaveSnapshot projects the request and persists the result under a fresh id.
func (s *ForecastService) SaveSnapshot(ctx context.Context, req models.ForecastRequest) (*models.ForecastSnapshot, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("snapshot storage is not configured")
	}

	points, err := s.Project(ctx, req)
	if err != nil {
		return nil, err
	}

	snapshot := &models.ForecastSnapshot{
		ID:       uuid.NewString(),
		ModelID:  req.ModelID,
		Periods:  req.Periods,
		Interval: req.Interval,
		Points:   points,
	}
	if snapshot.Periods == 0 {
		snapshot.Periods = s.cfg.Forecast.DefaultPeriods
	}
	if snapshot.Interval == "" {
		snapshot.Interval = models.Interval(s.cfg.Generator.DefaultInterval)
	}

	if err := s.repo.Save(ctx, snapshot); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"snapshot": snapshot.ID,
		"model":    snapshot.ModelID,
	}).Info("Saved forecast snapshot")
	return snapshot, nil
}

// GetSnapshot fetches a persisted snapshot by id.
func (s *ForecastService) GetSnapshot(ctx context.Context, id string) (*models.ForecastSnapshot, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("snapshot storage is not configured")
	}
	return s.repo.Get(ctx, id)
}

// ListSnapshots returns recent snapshots without their point payloads.
func (s *ForecastService) ListSnapshots(ctx context.Context, limit int) ([]models.ForecastSnapshot, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("snapshot storage is not configured")
	}
	return s.repo.List(ctx, limit)
}

// DeleteSnapshot removes a persisted snapshot by id.
func (s *ForecastService) DeleteSnapshot(ctx context.Context, id string) error {
	if s.repo == nil {
		return fmt.Errorf("snapshot storage is not configured")
	}
	return s.repo.Delete(ctx, id)
}
