package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/valkey-io/valkey-go"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/astro"
	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/dream"
	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/profile"
	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/infra/config"
	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/infra/dreamrepo"
	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/infra/ephemcache"
	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/infra/ephemeris"
	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/infra/profilerepo"
	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/infra/scoring"
	"github.com/FILIWILY/morpheus-dream-app-sub000/pkg/metrics"
)

// ephemerisBackend answers both position and house queries from one model so
// the serialized adapter guards both behind the same lock.
type ephemerisBackend interface {
	astro.EphemerisProvider
	astro.HouseProvider
}

func provideAstroConfig(cfg *config.Config) astro.Config {
	return astro.Config{
		HouseSystem:         astro.HouseSystem(cfg.Astro.HouseSystem),
		TopTransits:         cfg.Astro.TopTransits,
		DefaultTimezone:     cfg.Astro.BirthTimezone,
		ValidateCoordinates: cfg.Astro.ValidateCoordinates,
	}
}

func provideDreamConfig(cfg *config.Config) dream.Config {
	return dream.Config{
		DefaultListLimit: cfg.Dream.DefaultListLimit,
		MaxListLimit:     cfg.Dream.MaxListLimit,
		MaxNarrative:     cfg.Dream.MaxNarrative,
	}
}

func provideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func provideAstroMetrics(reg *prometheus.Registry) *metrics.Astro {
	return metrics.NewAstro(reg)
}

func provideEphemerisBackend(cfg *config.Config, logger *slog.Logger) ephemerisBackend {
	model := ephemeris.NewAnalytical()
	if cfg.Astro.SerializeEphemeris {
		logger.Info("ephemeris queries serialized through global-context adapter")
		return ephemeris.NewSerialized(ephemeris.NewGlobal(model))
	}
	return model
}

func provideEphemerisProvider(cfg *config.Config, backend ephemerisBackend, cache astro.PositionCache, logger *slog.Logger) astro.EphemerisProvider {
	if cfg.Astro.PositionCacheTTL <= 0 {
		return backend
	}
	return ephemeris.NewCached(backend, cache, cfg.Astro.PositionCacheTTL, logger)
}

func provideHouseProvider(backend ephemerisBackend) astro.HouseProvider {
	return backend
}

func provideScoringWatcher(cfg *config.Config, logger *slog.Logger) (*scoring.Watcher, error) {
	base := astro.DefaultScoring()
	base.Orb = cfg.Astro.Orb
	return scoring.NewWatcher(strings.TrimSpace(cfg.Astro.ScoringFile), base, logger)
}

// providePostgresPool returns a nil pool when no DSN is configured or the
// database cannot be reached; repositories then fall back to memory.
func providePostgresPool(cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, func()) {
	noop := func() {}
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repositories")
		return nil, noop
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repositories", "error", err)
		return nil, noop
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repositories", "error", err)
		return nil, noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repositories", "error", err)
		pool.Close()
		return nil, noop
	}
	logger.Info("postgres enabled")
	return pool, pool.Close
}

func provideProfileRepository(pool *pgxpool.Pool, logger *slog.Logger) profile.Repository {
	if pool == nil {
		return profilerepo.NewMemoryRepository()
	}
	repo := profilerepo.NewPostgresRepository(pool)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("profile schema setup failed, using memory repository", "error", err)
		return profilerepo.NewMemoryRepository()
	}
	return repo
}

func provideDreamRepository(pool *pgxpool.Pool, logger *slog.Logger) dream.Repository {
	if pool == nil {
		return dreamrepo.NewMemoryRepository()
	}
	repo := dreamrepo.NewPostgresRepository(pool)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("dream schema setup failed, using memory repository", "error", err)
		return dreamrepo.NewMemoryRepository()
	}
	return repo
}

func provideProfileReader(repo profile.Repository) dream.ProfileReader {
	return repo
}

func providePositionCache(cfg *config.Config, logger *slog.Logger) (astro.PositionCache, func()) {
	noop := func() {}
	if !cfg.Valkey.Enabled {
		return ephemcache.NewMemoryCache(), noop
	}
	opt, err := buildValkeyOptions(cfg)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
		return ephemcache.NewMemoryCache(), noop
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
		return ephemcache.NewMemoryCache(), noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		client.Close()
		return ephemcache.NewMemoryCache(), noop
	}
	logger.Info("valkey position cache enabled", "addr", cfg.Valkey.Addr)
	breaker := ephemcache.BreakerConfig{
		Name:             "ephemeris-cache",
		MaxRequests:      cfg.Breaker.MaxRequests,
		Interval:         cfg.Breaker.Interval,
		Timeout:          cfg.Breaker.Timeout,
		FailureThreshold: cfg.Breaker.FailureThreshold,
		MinRequests:      cfg.Breaker.MinRequests,
	}
	return ephemcache.NewValkeyCache(client, cfg.Valkey.KeyPrefix, breaker, logger), client.Close
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	if strings.Contains(cfg.Valkey.Addr, "://") {
		return valkey.ParseURL(cfg.Valkey.Addr)
	}
	return valkey.ClientOption{InitAddress: []string{cfg.Valkey.Addr}}, nil
}
