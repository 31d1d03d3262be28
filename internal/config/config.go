// Package config loads service configuration from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config holds every tunable the service reads at startup.
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string

	// CacheTTL bounds how long a cached snapshot may serve reads.
	CacheTTL time.Duration

	// SnapshotDebounce is the coalescing window for autosaved snapshots.
	SnapshotDebounce time.Duration
}

// Load reads configuration from the environment, applying defaults and
// logging a warning for each fallback that changes behavior.
func Load() *Config {
	cfg := &Config{
		Port:             os.Getenv("PORT"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		CacheTTL:         30 * time.Second,
		SnapshotDebounce: 500 * time.Millisecond,
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if v := os.Getenv("CACHE_TTL_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheTTL = time.Duration(n) * time.Second
		} else {
			slog.Warn("ignoring invalid CACHE_TTL_SECS", "value", v)
		}
	}

	if v := os.Getenv("SNAPSHOT_DEBOUNCE_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SnapshotDebounce = time.Duration(n) * time.Millisecond
		} else {
			slog.Warn("ignoring invalid SNAPSHOT_DEBOUNCE_MS", "value", v)
		}
	}

	return cfg
}
