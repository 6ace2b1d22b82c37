// Package app runs the startup sequence shared by the TUI and the CLI
// subcommands.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sadopc/pomodoro/internal/command"
	"github.com/sadopc/pomodoro/internal/config"
	"github.com/sadopc/pomodoro/internal/platform"
	"github.com/sadopc/pomodoro/internal/store"
)

type App struct {
	Config   *config.Config
	Store    *store.Store
	Commands *command.Registry
	Logger   *slog.Logger
}

// Startup opens and migrates the store, runs the platform hooks and builds
// the command registry, in that order. A store or migration failure is
// returned and must abort the launch; platform hook failures are not.
func Startup(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	return startup(ctx, cfg, logger, nil)
}

func startup(ctx context.Context, cfg *config.Config, logger *slog.Logger, cacheDir platform.CacheDirFunc) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("starting", "platform", cfg.Platform, "db", cfg.DBPath)

	s, err := store.New(ctx, cfg.DBPath)
	if err != nil {
		logger.Error("database setup failed", "error", err)
		return nil, fmt.Errorf("open database: %w", err)
	}

	platform.PurgeCache(cfg.Platform, cfg.AppID, cacheDir, logger)

	reg := command.NewRegistry(logger)
	command.RegisterDefaults(reg, s)

	return &App{Config: cfg, Store: s, Commands: reg, Logger: logger}, nil
}

func (a *App) Close() error {
	return a.Store.Close()
}
