package config

import (
	"flag"
	"os"
	"time"

	"github.com/packtrack/packtrack/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend API
//	-d string   path to the local sqlite database
//	-l string   log level
//	-w int      cache freshness window in seconds
//	-t int      request timeout in seconds (0 = none)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-l", "-w", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the backend API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	window := fs.Int("w", int(cfg.FreshnessWindow.Seconds()), "cache freshness window (in seconds)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds, 0 = none)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.FreshnessWindow = time.Duration(*window) * time.Second
	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
