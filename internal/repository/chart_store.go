package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"Stellium/internal/domain/models"
	domrepo "Stellium/internal/domain/repository"
)

// PostgresChartStore persists assembled natal charts as JSONB, one per
// profile. Charts are immutable snapshots; saving again replaces the row.
type PostgresChartStore struct {
	pool *pgxpool.Pool
}

func NewPostgresChartStore(pool *pgxpool.Pool) *PostgresChartStore {
	return &PostgresChartStore{pool: pool}
}

func (s *PostgresChartStore) Save(ctx context.Context, profileID uuid.UUID, chart *models.NatalChart) error {
	payload, err := json.Marshal(chart)
	if err != nil {
		return fmt.Errorf("marshal chart for %s: %w", profileID, err)
	}

	const query = `
		INSERT INTO charts (profile_id, chart, computed_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (profile_id) DO UPDATE SET
			chart       = EXCLUDED.chart,
			computed_at = EXCLUDED.computed_at`

	if _, err := s.pool.Exec(ctx, query, profileID, payload, time.Now().UTC()); err != nil {
		return fmt.Errorf("upsert chart for %s: %w", profileID, err)
	}
	return nil
}

func (s *PostgresChartStore) Get(ctx context.Context, profileID uuid.UUID) (*models.NatalChart, error) {
	const query = `SELECT chart FROM charts WHERE profile_id = $1`

	var payload []byte
	err := s.pool.QueryRow(ctx, query, profileID).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domrepo.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select chart for %s: %w", profileID, err)
	}

	var chart models.NatalChart
	if err := json.Unmarshal(payload, &chart); err != nil {
		return nil, fmt.Errorf("unmarshal chart for %s: %w", profileID, err)
	}
	return &chart, nil
}
