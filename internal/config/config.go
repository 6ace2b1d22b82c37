package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sadopc/pomodoro/internal/platform"
	"github.com/sadopc/pomodoro/internal/store"
)

// DefaultAppID is the package identifier used for the config and cache
// directories.
const DefaultAppID = "com.pomodoro.app"

type Config struct {
	AppID    string
	DBPath   string
	LogFile  string
	LogLevel slog.Level
	Platform platform.Platform
}

// Load reads .env files (when present) and then the process environment.
//
//	POMODORO_APP_ID     package identifier (default com.pomodoro.app)
//	POMODORO_DB_PATH    database file (default <config dir>/<app id>/pomodoro.db)
//	POMODORO_LOG_FILE   log file (default <config dir>/<app id>/pomodoro.log)
//	POMODORO_LOG_LEVEL  debug, info, warn or error (default info)
//	POMODORO_PLATFORM   platform tag override (default runtime.GOOS)
func Load(envFiles ...string) (*Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load(envFiles...)

	cfg := &Config{
		AppID:    getenv("POMODORO_APP_ID", DefaultAppID),
		DBPath:   os.Getenv("POMODORO_DB_PATH"),
		LogFile:  os.Getenv("POMODORO_LOG_FILE"),
		Platform: platform.Current(),
	}

	if v := os.Getenv("POMODORO_PLATFORM"); v != "" {
		cfg.Platform = platform.Parse(v)
	}

	level, err := ParseLevel(getenv("POMODORO_LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if cfg.DBPath == "" {
		path, err := store.DefaultDBPath(cfg.AppID)
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		cfg.DBPath = path
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(filepath.Dir(cfg.DBPath), "pomodoro.log")
	}
	return cfg, nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("parse log level %q: %w", s, err)
	}
	return level, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
