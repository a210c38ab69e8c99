package config

import "time"

// Config holds runtime settings for the PackTrack CLI.
//
// Units: RequestTimeout and FreshnessWindow are time.Durations. A zero
// RequestTimeout leaves remote calls unbounded, which the long-running
// packing computation relies on.
type Config struct {
	ServerBaseURL   string
	RequestTimeout  time.Duration
	FreshnessWindow time.Duration
	DatabasePath    string
	LogLevel        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 0
	c.FreshnessWindow = 5 * time.Minute
	c.DatabasePath = "packtrack.db"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (a .env file is honored), an optional JSON file,
// and command-line flags. Later sources take precedence over earlier
// ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
