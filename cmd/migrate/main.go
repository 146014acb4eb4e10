package main

import (
	"context"
	"flag"
	"os"

	"printshop/internal/config"
	"printshop/internal/logger"
	"printshop/internal/migrations"
)

func main() {
	configPath := flag.String("config", "config.yaml", "optional YAML config file")
	target := flag.Int64("to", 0, "version to roll back to with 'down'; 0 rolls back one step")
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}
	logger.Configure(logger.Config{Level: cfg.Logging.Level, Pretty: cfg.Logging.Pretty})

	runner, err := migrations.New(cfg.Database.DSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to configure migrations")
	}

	ctx := context.Background()
	switch command {
	case "up":
		err = runner.Up(ctx)
	case "status":
		err = runner.Status(ctx)
	case "down":
		err = runner.Down(ctx, *target)
	default:
		logger.Error().Str("command", command).Msg("Unknown command, expected up, status or down")
		os.Exit(2)
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("Migration failed")
	}
}
