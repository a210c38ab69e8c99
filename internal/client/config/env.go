package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment.
// A .env file in the working directory is loaded first, best effort:
// real environment variables win over file entries.
//
// Recognized variables:
//
//	PACKTRACK_SERVER_URL       base URL of the backend API
//	PACKTRACK_DATABASE         path to the local sqlite database
//	PACKTRACK_LOG_LEVEL        zerolog level name (debug, info, ...)
//	PACKTRACK_REQUEST_TIMEOUT  duration string, e.g. "30s" ("0" = none)
//	PACKTRACK_FRESHNESS_WINDOW duration string, e.g. "5m"
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("PACKTRACK_SERVER_URL"); v != "" {
		cfg.ServerBaseURL = v
	}
	if v := os.Getenv("PACKTRACK_DATABASE"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("PACKTRACK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("PACKTRACK_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("PACKTRACK_FRESHNESS_WINDOW"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.FreshnessWindow = d
		}
	}
}
