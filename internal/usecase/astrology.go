package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"Stellium/internal/astro/engine"
	"Stellium/internal/astro/timescale"
	"Stellium/internal/domain/models"
	domrepo "Stellium/internal/domain/repository"
	icache "Stellium/internal/service/cache"
	xlogger "Stellium/pkg/logger"
)

// AstrologyService orchestrates chart computation, persistence, and transit
// scanning. The engine itself is pure; everything stateful lives here.
type AstrologyService struct {
	engine   *engine.Engine
	profiles domrepo.ProfileStore
	charts   domrepo.ChartStore
	cache    icache.BytesCache
	metrics  domrepo.Metrics
	logger   *xlogger.Logger
	cacheTTL time.Duration
}

func NewAstrologyService(
	eng *engine.Engine,
	profiles domrepo.ProfileStore,
	charts domrepo.ChartStore,
	cache icache.BytesCache,
	metrics domrepo.Metrics,
	logger *xlogger.Logger,
	cacheTTL time.Duration,
) *AstrologyService {
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &AstrologyService{
		engine:   eng,
		profiles: profiles,
		charts:   charts,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}

// ComputeChart computes a natal chart without persisting anything.
func (s *AstrologyService) ComputeChart(ctx context.Context, req *models.BirthDataRequest) (models.NatalChart, error) {
	start := time.Now()
	data, err := birthDataFromRequest(req)
	if err != nil {
		return models.NatalChart{}, err
	}

	chart, err := s.engine.ComputeBirthChart(data)
	if err != nil {
		s.metrics.RecordChartComputed("error")
		s.metrics.RecordError("chart_compute")
		return models.NatalChart{}, err
	}

	s.metrics.RecordChartComputed("ok")
	s.metrics.RecordLatency("compute_chart", time.Since(start).Seconds())
	return chart, nil
}

// CreateProfile stores a new profile and its computed natal chart. The chart
// is computed first so an invalid birth moment never leaves a chartless row.
func (s *AstrologyService) CreateProfile(ctx context.Context, req *models.ProfileCreateRequest) (*models.Profile, error) {
	chart, err := s.ComputeChart(ctx, &req.BirthData)
	if err != nil {
		return nil, err
	}

	p := &models.Profile{
		Name:             req.Name,
		BirthDate:        req.BirthData.BirthDate,
		BirthTime:        req.BirthData.BirthTime,
		Latitude:         req.BirthData.Latitude,
		Longitude:        req.BirthData.Longitude,
		UTCOffsetMinutes: req.BirthData.UTCOffsetMinutes,
	}
	if err := s.profiles.Create(ctx, p); err != nil {
		return nil, err
	}
	if err := s.charts.Save(ctx, p.ID, &chart); err != nil {
		return nil, err
	}

	s.logger.Info("profile created",
		xlogger.String("profile_id", p.ID.String()),
		xlogger.String("name", p.Name),
	)
	return p, nil
}

// UpdateBirthData replaces a profile's birth data and recomputes its chart.
func (s *AstrologyService) UpdateBirthData(ctx context.Context, id uuid.UUID, req *models.BirthDataRequest) (*models.Profile, error) {
	p, err := s.profiles.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	chart, err := s.ComputeChart(ctx, req)
	if err != nil {
		return nil, err
	}

	p.BirthDate = req.BirthDate
	p.BirthTime = req.BirthTime
	p.Latitude = req.Latitude
	p.Longitude = req.Longitude
	p.UTCOffsetMinutes = req.UTCOffsetMinutes
	if err := s.profiles.UpdateBirthData(ctx, p); err != nil {
		return nil, err
	}
	if err := s.charts.Save(ctx, p.ID, &chart); err != nil {
		return nil, err
	}

	s.logger.Info("birth data updated", xlogger.String("profile_id", p.ID.String()))
	return p, nil
}

// Health reports storage availability.
func (s *AstrologyService) Health(ctx context.Context) error {
	return s.profiles.Health(ctx)
}

// Profile returns a stored profile.
func (s *AstrologyService) Profile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	return s.profiles.Get(ctx, id)
}

// ChartFor returns the stored chart for a profile.
func (s *AstrologyService) ChartFor(ctx context.Context, profileID uuid.UUID) (*models.NatalChart, error) {
	return s.charts.Get(ctx, profileID)
}

// Transits returns the transit snapshot for a profile at the given instant.
// Snapshots are cached per minute bucket so polling clients and the stream
// share one scan.
func (s *AstrologyService) Transits(ctx context.Context, profileID uuid.UUID, at time.Time) (models.TransitSnapshot, error) {
	at = at.UTC().Truncate(time.Minute)
	key := icache.TransitKey(profileID, at)

	if b, ok, err := s.cache.GetBytes(key); err == nil && ok {
		var snap models.TransitSnapshot
		if err := json.Unmarshal(b, &snap); err == nil {
			return snap, nil
		}
	} else if err != nil {
		s.logger.Warn("transit cache read failed", xlogger.Error(err))
	}

	natal, err := s.charts.Get(ctx, profileID)
	if err != nil {
		return models.TransitSnapshot{}, err
	}

	start := time.Now()
	snap, err := s.engine.ComputeTransits(at, natal)
	if err != nil {
		s.metrics.RecordError("transit_scan")
		return models.TransitSnapshot{}, err
	}
	s.metrics.RecordTransitScan()
	s.metrics.RecordLatency("transit_scan", time.Since(start).Seconds())

	if b, err := json.Marshal(snap); err == nil {
		if err := s.cache.SetBytes(key, b, s.cacheTTL); err != nil {
			s.logger.Warn("transit cache write failed", xlogger.Error(err))
		}
	}
	return snap, nil
}

// birthDataFromRequest parses the request's date and time strings. An empty
// birth time defaults to noon local time.
func birthDataFromRequest(req *models.BirthDataRequest) (engine.BirthData, error) {
	d, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return engine.BirthData{}, fmt.Errorf("%w: birth_date %q", timescale.ErrInvalidCivilTime, req.BirthDate)
	}
	bt := req.BirthTime
	if bt == "" {
		bt = "12:00"
	}
	t, err := time.Parse("15:04", bt)
	if err != nil {
		return engine.BirthData{}, fmt.Errorf("%w: birth_time %q", timescale.ErrInvalidCivilTime, bt)
	}
	return engine.BirthData{
		Year:             d.Year(),
		Month:            int(d.Month()),
		Day:              d.Day(),
		Hour:             t.Hour(),
		Minute:           t.Minute(),
		UTCOffsetMinutes: req.UTCOffsetMinutes,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
	}, nil
}
