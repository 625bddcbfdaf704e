package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/salespulse/salespulse-go/internal/models"
	"github.com/salespulse/salespulse-go/internal/utils"
)

// DatabasePool defines the interface for database pool operations.
// This interface allows for both real pool and mock pool implementations.
type DatabasePool interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

// SnapshotRepository persists forecast snapshots so a dashboard session can
// be revisited or shared. Points are stored as a JSONB document; the
// repository never inspects individual points server-side.
type SnapshotRepository struct {
	pool DatabasePool
}

// NewSnapshotRepository creates a new snapshot repository.
func NewSnapshotRepository(pool DatabasePool) *SnapshotRepository {
	return &SnapshotRepository{
		pool: pool,
	}
}

// Save inserts a snapshot and returns it with its creation timestamp filled in.
func (r *SnapshotRepository) Save(ctx context.Context, snapshot *models.ForecastSnapshot) error {
	points, err := json.Marshal(snapshot.Points)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot points: %w", err)
	}

	query := `
		INSERT INTO forecast_snapshots (id, model_id, periods, interval, points)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err = r.pool.QueryRow(ctx, query,
		snapshot.ID, snapshot.ModelID, snapshot.Periods, string(snapshot.Interval), points,
	).Scan(&snapshot.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save forecast snapshot: %w", err)
	}
	return nil
}

// Get fetches one snapshot by id.
func (r *SnapshotRepository) Get(ctx context.Context, id string) (*models.ForecastSnapshot, error) {
	query := `
		SELECT id, model_id, periods, interval, points, created_at
		FROM forecast_snapshots
		WHERE id = $1`

	var snapshot models.ForecastSnapshot
	var interval string
	var points []byte

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&snapshot.ID, &snapshot.ModelID, &snapshot.Periods, &interval, &points, &snapshot.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, utils.NewNotFoundError("forecast snapshot", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get forecast snapshot: %w", err)
	}

	snapshot.Interval = models.Interval(interval)
	if err := json.Unmarshal(points, &snapshot.Points); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot points: %w", err)
	}
	return &snapshot, nil
}

// List returns the most recent snapshots, newest first, without their point
// payloads.
func (r *SnapshotRepository) List(ctx context.Context, limit int) ([]models.ForecastSnapshot, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, model_id, periods, interval, created_at
		FROM forecast_snapshots
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list forecast snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []models.ForecastSnapshot
	for rows.Next() {
		var s models.ForecastSnapshot
		var interval string
		if err := rows.Scan(&s.ID, &s.ModelID, &s.Periods, &interval, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan forecast snapshot: %w", err)
		}
		s.Interval = models.Interval(interval)
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate forecast snapshots: %w", err)
	}
	return snapshots, nil
}

// Delete removes a snapshot by id.
func (r *SnapshotRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM forecast_snapshots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete forecast snapshot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return utils.NewNotFoundError("forecast snapshot", id)
	}
	return nil
}

// EnsureSchema creates the snapshot table when it does not exist yet. The
// service runs against a plain Postgres without a migration step.
func (r *SnapshotRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS forecast_snapshots (
			id TEXT PRIMARY KEY,
			model_id TEXT NOT NULL,
			periods INT NOT NULL,
			interval TEXT NOT NULL,
			points JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("failed to ensure snapshot schema: %w", err)
	}
	return nil
}
