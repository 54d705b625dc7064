// Package app assembles the session service from configuration. The HTTP
// server and the operator CLI share it.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stemsi/mathsession-backend/internal/config"
	"github.com/stemsi/mathsession-backend/internal/database"
	"github.com/stemsi/mathsession-backend/internal/feedback"
	"github.com/stemsi/mathsession-backend/internal/llm"
	"github.com/stemsi/mathsession-backend/internal/observability"
	"github.com/stemsi/mathsession-backend/internal/problem"
	"github.com/stemsi/mathsession-backend/internal/repository"
	"github.com/stemsi/mathsession-backend/internal/service"
)

// CheckFunc probes one dependency.
type CheckFunc func(ctx context.Context) error

// App holds the wired service and the resources it owns.
type App struct {
	Service *service.ProblemSessionService
	Store   service.SessionStore
	// Checks are exposed on the health endpoint, keyed by dependency name.
	Checks map[string]CheckFunc

	closers []func()
}

// Build opens the configured store, optional cache and LLM provider. A
// missing LLM key is not fatal: operations then fail with a configuration
// error.
func Build(ctx context.Context, cfg *config.Config, log zerolog.Logger, metrics *observability.Metrics) (*App, error) {
	a := &App{Checks: make(map[string]CheckFunc)}

	store, err := a.openStore(ctx, cfg, log)
	if err != nil {
		a.Close()
		return nil, err
	}

	if cfg.RedisURL != "" {
		rdb, err := database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		a.Checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		store = repository.NewCachedSessionStore(store, rdb, cfg.SessionCacheTTL, log)
	}
	a.Store = store

	provider, err := llm.NewProvider(ctx, cfg.LLM, log, metrics)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		log.Warn().
			Str("provider", cfg.LLM.Provider).
			Msg("LLM provider has no API key; create and submit will fail with CONFIGURATION_ERROR")
		provider = nil
	case err != nil:
		a.Close()
		return nil, fmt.Errorf("init llm provider: %w", err)
	default:
		log.Info().
			Str("provider", provider.Name()).
			Str("model", provider.ModelID()).
			Dur("timeout", cfg.LLM.Timeout).
			Msg("LLM provider ready")
	}

	a.Service = service.NewProblemSessionService(
		store,
		problem.NewGenerator(provider, cfg.LLM.MaxTokens),
		feedback.NewGenerator(provider, cfg.LLM.MaxTokens),
		metrics,
		log,
	)
	return a, nil
}

func (a *App) openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (service.SessionStore, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		a.Checks["postgres"] = pool.Ping
		return repository.NewProblemSessionRepository(pool), nil

	case config.StoreDriverSQLite:
		db, err := database.NewSQLiteDB(ctx, cfg.SQLitePath, log)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		a.closers = append(a.closers, func() { _ = db.Close() })
		a.Checks["sqlite"] = db.PingContext
		return repository.NewSQLiteRepository(db), nil

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
