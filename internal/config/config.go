// Package config holds the process configuration, read from TURF_* environment
// variables. Everything has a sensible default so the binary runs with no
// environment at all.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// DBPath overrides the local SQLite location (default ~/.turf.db).
	DBPath string `env:"DB_PATH"`

	// CloudPath points at the file-backed cloud mirror. Empty means the
	// platform has no cloud store and the game runs local-only.
	CloudPath string `env:"CLOUD_PATH"`

	// NoSync suppresses the outbound mirror even when CloudPath is set.
	NoSync bool `env:"NO_SYNC"`

	// Home reference point for check-in distance tiers. Defaults to the
	// launch-site coordinates the season is themed around.
	HomeLat float64 `env:"HOME_LAT" envDefault:"45.6167"`
	HomeLon float64 `env:"HOME_LON" envDefault:"63.3167"`

	// Identity presented to the remote store when no platform user exists.
	UserName string `env:"USER_NAME"`
}

// Load parses TURF_* environment variables and fills in defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "TURF_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("get home dir: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".turf.db")
	}
	return cfg, nil
}
