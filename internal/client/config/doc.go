// Package config loads runtime configuration for the PackTrack CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, with an optional .env file (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be
// either strings like "5m" or integer nanoseconds:
//
//	{
//	  "server_base_url": "https://api.example.com",
//	  "freshness_window": "5m",
//	  "request_timeout": "0s",
//	  "database_path": "packtrack.db",
//	  "log_level": "info"
//	}
package config
