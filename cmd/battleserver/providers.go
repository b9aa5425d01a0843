package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/arena"
	"github.com/cory-johannsen/arena/internal/config"
	"github.com/cory-johannsen/arena/internal/game/battle"
	"github.com/cory-johannsen/arena/internal/game/entropy"
	"github.com/cory-johannsen/arena/internal/game/roster"
	"github.com/cory-johannsen/arena/internal/observability"
	"github.com/cory-johannsen/arena/internal/server"
	"github.com/cory-johannsen/arena/internal/storage/postgres"
)

// App is the assembled battle server.
type App struct {
	Config config.Config
	Logger *zap.Logger
	Server server.Service
}

func provideLogger(cfg config.Config) (*zap.Logger, func(), error) {
	logger, err := observability.NewLogger(cfg.Logging, "battleserver")
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func provideServerConfig(cfg config.Config) config.ServerConfig {
	return cfg.Server
}

func provideSeedSource(cfg config.Config) (battle.SeedSource, error) {
	return entropy.NewSource(cfg.Battle.SeedSource, cfg.Battle.Hash)
}

func provideSimulator(src battle.SeedSource, cfg config.Config, logger *zap.Logger) *battle.Simulator {
	return battle.NewSimulator(src, cfg.Battle.MaxRounds, logger)
}

func provideRoster(cfg config.Config, logger *zap.Logger) (*roster.Registry, error) {
	return roster.Open(cfg.Battle, logger)
}

// provideStore connects to PostgreSQL only when persistence is enabled.
func provideStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (arena.Store, func(), error) {
	if !cfg.Battle.Persist {
		logger.Info("battle persistence disabled")
		return nil, func() {}, nil
	}
	start := time.Now()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Health(ctx, 5*time.Second); err != nil {
		pool.Close()
		return nil, nil, err
	}
	logger.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.Duration("elapsed", time.Since(start)),
	)
	return postgres.NewBattleRepository(pool.DB()), pool.Close, nil
}
