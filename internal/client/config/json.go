package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/packtrack/packtrack/internal/flagx"
	"github.com/packtrack/packtrack/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// use timex.Duration so the file can specify either strings like "5m" or
// integer nanoseconds.
type JsonConfig struct {
	ServerBaseURL   string         `json:"server_base_url"`
	RequestTimeout  timex.Duration `json:"request_timeout"`
	FreshnessWindow timex.Duration `json:"freshness_window"`
	DatabasePath    string         `json:"database_path"`
	LogLevel        string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named
// by the -c/-config flags. When no file is named the function returns
// without touching cfg. Read or unmarshal errors panic; intended usage
// is defaults -> env -> parseJson -> parseFlags.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.FreshnessWindow.Duration != 0 {
		cfg.FreshnessWindow = time.Duration(jc.FreshnessWindow.Duration)
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
