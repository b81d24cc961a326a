package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/crewkit-dev/crewkit/internal/cache"
	"github.com/crewkit-dev/crewkit/internal/cli"
	"github.com/crewkit-dev/crewkit/internal/config"
)

var version = "dev"

func main() {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "crewkit: %v\n", err)
		os.Exit(1)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if level, err := zerolog.ParseLevel(settings.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	app := &cli.App{
		Settings: settings,
		Store:    cache.NewStore(settings.CacheDir, settings.AnalysisTTL, settings.GenerationTTL, logger),
		Log:      logger,
	}

	if err := cli.NewRootCommand(version, app).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "crewkit: %v\n", err)
		os.Exit(1)
	}
}
