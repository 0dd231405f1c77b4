package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/osse101/IdleYard_Go/internal/account"
	"github.com/osse101/IdleYard_Go/internal/config"
	"github.com/osse101/IdleYard_Go/internal/database"
	"github.com/osse101/IdleYard_Go/internal/database/postgres"
	"github.com/osse101/IdleYard_Go/internal/engine"
	"github.com/osse101/IdleYard_Go/internal/event"
	"github.com/osse101/IdleYard_Go/internal/metrics"
	"github.com/osse101/IdleYard_Go/internal/rules"
	"github.com/osse101/IdleYard_Go/internal/server"
)

const (
	dbMaxConnections = 10
	dbMaxIdleTime    = 5 * time.Minute
	dbMaxLifetime    = 30 * time.Minute

	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	// Database
	pool, err := database.NewPool(cfg.GetDBConnString(), dbMaxConnections, dbMaxIdleTime, dbMaxLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Game rules
	ruleSet, err := rules.NewLoader(cfg.RulesDir, int64(cfg.TimeScale)).Load()
	if err != nil {
		slog.Error("Failed to load game rules", "error", err)
		os.Exit(1)
	}
	slog.Info("Game rules loaded", "games", ruleSet.IDs())

	// Event bus with retry and dead-letter fallback
	bus := event.NewMemoryBus()
	publisher, err := event.NewResilientPublisher(bus, event.ResilientConfig{
		MaxRetries:     event.RetryMaxAttempts,
		RetryDelay:     event.RetryInitialDelaySeconds * time.Second,
		DeadLetterPath: cfg.DeadLetterPath,
	})
	if err != nil {
		slog.Error("Failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	collector := metrics.NewEventMetricsCollector()
	if err := collector.Register(bus); err != nil {
		slog.Error("Failed to register event metrics", "error", err)
		os.Exit(1)
	}

	// Repositories and services
	accountRepo := postgres.NewAccountRepository(pool)
	stateRepo := postgres.NewGameStateRepository(pool)

	accountService := account.NewService(accountRepo)
	engineService := engine.NewService(accountRepo, stateRepo, ruleSet, publisher)

	trustedProxies := splitProxies(os.Getenv("TRUSTED_PROXIES"))
	srv := server.NewServer(cfg.Port, cfg.APIKey, trustedProxies, pool, accountService, engineService)

	// Run until interrupted
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

func splitProxies(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	proxies := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			proxies = append(proxies, trimmed)
		}
	}
	return proxies
}
