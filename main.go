package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"rankocr/cmd"
	"rankocr/internal/config"
	"rankocr/internal/logger"
)

func main() {
	// A missing .env is fine, the environment may already be set.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	cfg, err := setup()
	if err != nil {
		log.Fatalf("%v", err)
	}

	mainLog := logger.WithComponent("main")
	mainLog.Debug().Str("ranker", cfg.Ranker).Msg("Starting rankocr")

	cmd.Execute(cfg)
}

// setup loads the configuration and installs the logger. An invalid
// configuration is an error, it never falls back to defaults.
func setup() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}
