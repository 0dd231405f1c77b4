package main

import (
	"github.com/osse101/IdleYard_Go/internal/config"
	"github.com/osse101/IdleYard_Go/internal/handler"
	"github.com/osse101/IdleYard_Go/internal/logger"
)

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	// Source info only in dev
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		"idleyard",
		handler.Version,
		cfg.Environment,
		addSource,
	)

	logger.InitLogger(loggerConfig)
}
