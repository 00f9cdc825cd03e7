package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"Stellium/internal/domain/models"
)

// ErrNotFound is returned by stores when the requested row does not exist.
var ErrNotFound = errors.New("not found")

type ProfileStore interface {
	Create(ctx context.Context, p *models.Profile) error
	Get(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	UpdateBirthData(ctx context.Context, p *models.Profile) error
	Health(ctx context.Context) error
	Close() error
}

type ChartStore interface {
	Save(ctx context.Context, profileID uuid.UUID, chart *models.NatalChart) error
	Get(ctx context.Context, profileID uuid.UUID) (*models.NatalChart, error)
}

type Metrics interface {
	RecordChartComputed(outcome string)
	RecordTransitScan()
	RecordError(kind string)
	StreamClientConnected(delta int)
	RecordLatency(op string, seconds float64)
}
