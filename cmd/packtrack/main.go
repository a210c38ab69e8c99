package main

import (
	"context"
	"log"

	"github.com/packtrack/packtrack/internal/client/cli"
	"github.com/packtrack/packtrack/internal/client/config"
	"github.com/packtrack/packtrack/internal/logging"
)

func main() {
	ctx := context.Background()

	cfg := config.LoadConfig()
	logger := logging.NewZerologLogger(cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
