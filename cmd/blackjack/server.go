package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/server"
)

// ServerCmd runs the room server. Flags override the config file.
type ServerCmd struct {
	Config          string         `kong:"default='blackjack.hcl',help='HCL config file (defaults apply if missing)'"`
	Addr            string         `kong:"help='Server address'"`
	LogLevel        string         `kong:"help='Log level (debug, info, warn, error)'"`
	Seed            *int64         `kong:"help='Deterministic RNG seed for shuffles (optional)'"`
	StartingCredits int            `kong:"help='Credits given to new players'"`
	RoundTimeout    *time.Duration `kong:"help='Auto-stand and settle rounds older than this (0 disables)'"`
}

func (c *ServerCmd) Run() error {
	fileCfg, err := server.LoadServerConfig(c.Config)
	if err != nil {
		return err
	}
	c.applyOverrides(fileCfg)
	if err := fileCfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := shared.SetupLogger(fileCfg.Server.LogLevel)
	if err != nil {
		return err
	}

	cfg := fileCfg.Runtime()
	cfg.Seed = randutil.Seed(cfg.Seed)
	logger.Info("Using seed", "seed", cfg.Seed)

	srv := server.NewServer(logger, randutil.New(cfg.Seed), server.WithConfig(cfg))

	logger.Info("Starting blackjack server",
		"address", cfg.Address,
		"rooms", len(cfg.Rooms),
		"starting_credits", cfg.StartingCredits,
		"round_timeout", cfg.RoundTimeout)

	ctx := shared.SetupSignalHandlerWithLogger(logger)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Run(gctx)
	})
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (c *ServerCmd) applyOverrides(cfg *server.ServerConfig) {
	if c.Addr != "" {
		cfg.Server.Address = c.Addr
	}
	if c.LogLevel != "" {
		cfg.Server.LogLevel = c.LogLevel
	}
	if c.Seed != nil {
		cfg.Game.Seed = *c.Seed
	}
	if c.StartingCredits != 0 {
		cfg.Game.StartingCredits = c.StartingCredits
	}
	if c.RoundTimeout != nil {
		cfg.Game.RoundTimeout = c.RoundTimeout.String()
	}
}
