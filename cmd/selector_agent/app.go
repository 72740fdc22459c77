package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jonathan/agent-selector/internal/cache"
	"github.com/jonathan/agent-selector/internal/config"
	"github.com/jonathan/agent-selector/internal/db"
	"github.com/jonathan/agent-selector/internal/llm"
	"github.com/jonathan/agent-selector/internal/requestlog"
)

// app holds the wired dependencies shared by commands
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	orch    *llm.Orchestrator
	querier llm.Querier
	store   cache.Store
	reqLog  *requestlog.Writer
	closers []func()
}

// newApp loads configuration and wires the orchestrator, cache and request log.
// With useCache false queries go straight to the orchestrator.
func newApp(ctx context.Context, useCache bool) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		logger: cfg.Logger(os.Stderr),
	}

	priority, err := cfg.Priority()
	if err != nil {
		return nil, err
	}
	a.orch = llm.NewOrchestrator(cfg.Registry(), priority, a.logger)
	a.querier = a.orch
	a.reqLog = requestlog.NewWriter(cfg.RequestLogDir, a.logger)

	if useCache && cfg.CacheBackend != config.CacheNone {
		store, closeStore, err := openStore(ctx, cfg)
		if err != nil {
			a.logger.WarnContext(ctx, "cache unavailable, querying without it", slog.String("error", err.Error()))
		} else {
			a.store = store
			a.closers = append(a.closers, closeStore)
			a.querier = cache.NewClient(a.orch, store, a.logger)
		}
	}

	return a, nil
}

// Close releases backend connections
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// openStore connects the configured cache backend
func openStore(ctx context.Context, cfg *config.Config) (cache.Store, func(), error) {
	switch cfg.CacheBackend {
	case config.CachePostgres:
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, nil, err
		}
		return cache.NewPostgresStore(database), database.Close, nil

	case config.CacheRedis:
		store, err := cache.NewRedisStore(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil

	case config.CacheMemory:
		return cache.NewMemoryStore(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("cache backend %q has no store", cfg.CacheBackend)
}
