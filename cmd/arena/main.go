// Package main provides a one-shot CLI that runs a battle between two roster
// agents and prints the outcome.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/arena"
	"github.com/cory-johannsen/arena/internal/config"
	"github.com/cory-johannsen/arena/internal/game/battle"
	"github.com/cory-johannsen/arena/internal/game/entropy"
	"github.com/cory-johannsen/arena/internal/game/roster"
	"github.com/cory-johannsen/arena/internal/observability"
	"github.com/cory-johannsen/arena/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	attackerID := flag.String("attacker", "", "roster id of the attacking agent")
	defenderID := flag.String("defender", "", "roster id of the defending agent")
	seedHex := flag.String("seed", "", "64-character hex seed; empty uses the configured seed source")
	asJSON := flag.Bool("json", false, "print the battle record as JSON")
	list := flag.Bool("list", false, "list roster agents and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	logger, err := observability.NewLogger(cfg.Logging, "arena")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	reg, err := roster.Open(cfg.Battle, logger)
	if err != nil {
		logger.Fatal("loading roster", zap.Error(err))
	}
	if *list {
		printRoster(os.Stdout, reg)
		return
	}
	if *attackerID == "" || *defenderID == "" {
		flag.Usage()
		os.Exit(2)
	}

	req := arena.FightRequest{AttackerID: *attackerID, DefenderID: *defenderID}
	if *seedHex != "" {
		seed, err := battle.ParseSeed(*seedHex)
		if err != nil {
			logger.Fatal("parsing seed", zap.Error(err))
		}
		req.Seed = &seed
	}

	src, err := entropy.NewSource(cfg.Battle.SeedSource, cfg.Battle.Hash)
	if err != nil {
		logger.Fatal("creating seed source", zap.Error(err))
	}
	sim := battle.NewSimulator(src, cfg.Battle.MaxRounds, logger)

	ctx := context.Background()
	var store arena.Store
	if cfg.Battle.Persist {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		defer pool.Close()
		if err := pool.Health(ctx, 5*time.Second); err != nil {
			logger.Fatal("checking database", zap.Error(err))
		}
		store = postgres.NewBattleRepository(pool.DB())
	}

	rec, err := arena.NewService(reg, sim, store, logger).Fight(ctx, req)
	if err != nil {
		logger.Fatal("running battle", zap.Error(err))
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rec); err != nil {
			logger.Fatal("encoding battle", zap.Error(err))
		}
		return
	}
	printBattle(os.Stdout, rec)
}

func printBattle(w io.Writer, rec *battle.Record) {
	fmt.Fprintf(w, "battle %s seed %s\n", rec.ID, rec.Seed)
	for _, line := range battle.Render(rec.Result) {
		fmt.Fprintln(w, line)
	}
}

func printRoster(w io.Writer, reg *roster.Registry) {
	for _, c := range reg.All() {
		fmt.Fprintf(w, "%-12s %-16s atk=%d def=%d spd=%d nrg=%d per=%d\n",
			c.ID, c.Name, c.Attack, c.Defense, c.Speed, c.Energy, c.Personality)
	}
}
