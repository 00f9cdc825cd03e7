package di

import (
	"context"
	"fmt"
	"time"

	"Stellium/internal/astro/engine"
	"Stellium/internal/astro/ephemeris"
	"Stellium/internal/domain/repository"
	"Stellium/internal/handler/api"
	internalrepo "Stellium/internal/repository"
	icache "Stellium/internal/service/cache"
	"Stellium/internal/usecase"
	"Stellium/pkg/config"
	xhttp "Stellium/pkg/http"
	xlogger "Stellium/pkg/logger"
	"Stellium/pkg/metrics"
	pkgpg "Stellium/pkg/postgres"
	"Stellium/pkg/server"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		birth_date TEXT NOT NULL,
		birth_time TEXT NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		utc_offset_minutes INT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS charts (
		profile_id UUID PRIMARY KEY REFERENCES profiles(id) ON DELETE CASCADE,
		chart JSONB NOT NULL,
		computed_at TIMESTAMPTZ NOT NULL
	)`,
}

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*xlogger.Logger, error) {
	return xlogger.New(&xlogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvidePostgresClient creates a PostgreSQL client and ensures the schema.
func ProvidePostgresClient(cfg *config.Config) (*pkgpg.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := pkgpg.NewClient(ctx,
		pkgpg.WithHost(cfg.Postgres.Host),
		pkgpg.WithPort(cfg.Postgres.Port),
		pkgpg.WithDatabase(cfg.Postgres.Database),
		pkgpg.WithCredentials(cfg.Postgres.User, cfg.Postgres.Password),
		pkgpg.WithSSLMode(cfg.Postgres.SSLMode),
		pkgpg.WithPoolSize(cfg.Postgres.MaxConns, cfg.Postgres.MinConns),
	)
	if err != nil {
		return nil, fmt.Errorf("postgres client: %w", err)
	}

	if err := client.InitSchema(ctx, schema); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("postgres schema: %w", err)
	}
	return client, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvidePositionProvider creates the ephemeris provider. Analytic carries no
// state, so one instance is shared by every request; a stateful provider
// would be wrapped with ephemeris.Serialize here instead.
func ProvidePositionProvider() ephemeris.Provider {
	return ephemeris.Analytic{}
}

// ProvideEngine creates the computation engine with the configured transit orb.
func ProvideEngine(p ephemeris.Provider, cfg *config.Config) *engine.Engine {
	return engine.New(p, cfg.Transits.MaxOrb)
}

// ProvideProfileStore creates the PostgreSQL profile store.
func ProvideProfileStore(client *pkgpg.Client) repository.ProfileStore {
	return internalrepo.NewPostgresProfileStore(client.Pool())
}

// ProvideChartStore creates the PostgreSQL chart store.
func ProvideChartStore(client *pkgpg.Client) repository.ChartStore {
	return internalrepo.NewPostgresChartStore(client.Pool())
}

// ProvideCache selects the transit snapshot cache backend.
func ProvideCache(cfg *config.Config) icache.BytesCache {
	if cfg.Cache.Redis.Enabled {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvideAstrologyService creates the orchestrating use case.
func ProvideAstrologyService(
	eng *engine.Engine,
	profiles repository.ProfileStore,
	charts repository.ChartStore,
	cache icache.BytesCache,
	m repository.Metrics,
	logger *xlogger.Logger,
	cfg *config.Config,
) *usecase.AstrologyService {
	return usecase.NewAstrologyService(eng, profiles, charts, cache, m, logger, cfg.Cache.TransitTTL)
}

// ProvideHandler creates the Echo API handler.
func ProvideHandler(
	logger *xlogger.Logger,
	svc *usecase.AstrologyService,
	m repository.Metrics,
	cfg *config.Config,
) xhttp.Handler {
	return api.NewAstrologyEchoHandler(
		logger, svc, m,
		cfg.RateLimit.ChartsPerMinute, cfg.RateLimit.Burst,
		cfg.Transits.StreamInterval,
	)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *xlogger.Logger,
	handler xhttp.Handler,
	pgClient *pkgpg.Client,
) *server.App {
	return server.New(cfg, logger, handler, pgClient)
}
