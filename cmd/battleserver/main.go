// Package main provides the arena battle server, which serves battles over gRPC.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/config"
	"github.com/cory-johannsen/arena/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	ctx := context.Background()
	app, cleanup, err := initializeApp(ctx, cfg)
	if err != nil {
		log.Fatalf("initializing battle server: %v", err)
	}
	defer cleanup()

	app.Logger.Info("starting battle server",
		zap.String("grpc_addr", cfg.Server.Addr()),
		zap.String("seed_source", cfg.Battle.SeedSource),
		zap.Int("max_rounds", cfg.Battle.MaxRounds),
		zap.Bool("persist", cfg.Battle.Persist),
		zap.Duration("startup", time.Since(start)),
	)

	lc := server.NewLifecycle(app.Logger)
	lc.Add("grpc", app.Server)
	if err := lc.Run(ctx); err != nil {
		app.Logger.Error("battle server exited", zap.Error(err))
		cleanup()
		os.Exit(1)
	}
}
