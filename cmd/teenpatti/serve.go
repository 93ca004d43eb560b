package main

import (
	"context"
	"math"
	"time"

	"github.com/lox/teenpatti/cmd/teenpatti/shared"
	"github.com/lox/teenpatti/internal/game"
	"github.com/lox/teenpatti/internal/randutil"
	"github.com/lox/teenpatti/internal/server"
	"github.com/lox/teenpatti/internal/session"
)

// ServeCmd serves one private table per WebSocket connection
type ServeCmd struct {
	Addr string `env:"TEENPATTI_ADDR" help:"Listen address (overrides the config file)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	logger := shared.SetupLogger(g.Debug, g.JSON)

	cfg, err := shared.LoadConfig(g.Config, g.Seed)
	if err != nil {
		return err
	}
	if err := shared.ParseLevel(logger, cfg.Server.LogLevel, g.Debug); err != nil {
		return err
	}
	addr := cfg.Server.Address
	if c.Addr != "" {
		addr = c.Addr
	}

	// Every connection's table is seeded from one shared source.
	base, seed := randutil.Resolve(cfg.Seed)
	seeds := randutil.NewLocked(base)
	logger.Info("Using seed", "seed", seed)

	factory := func() (*session.Session, error) {
		rng := randutil.New(int64(seeds.IntN(math.MaxInt)))
		table, err := game.NewTable(rng, cfg.Table, game.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return session.New(table, session.WithConfig(cfg.Session), session.WithLogger(logger))
	}

	srv := server.NewServer(addr, factory, logger)
	ctx := shared.SetupSignalHandler(logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}
