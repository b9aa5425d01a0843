//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/cory-johannsen/arena/internal/arena"
	"github.com/cory-johannsen/arena/internal/arenaserver"
	"github.com/cory-johannsen/arena/internal/config"
	"github.com/cory-johannsen/arena/internal/game/roster"
	"github.com/cory-johannsen/arena/internal/server"
)

func initializeApp(ctx context.Context, cfg config.Config) (*App, func(), error) {
	wire.Build(
		provideLogger,
		provideServerConfig,
		provideSeedSource,
		provideSimulator,
		provideRoster,
		provideStore,
		wire.Bind(new(arena.Roster), new(*roster.Registry)),
		arena.NewService,
		arenaserver.NewGRPCService,
		arenaserver.NewServer,
		wire.Bind(new(server.Service), new(*arenaserver.Server)),
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
