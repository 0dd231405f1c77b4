package main

import (
	"database/sql"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/osse101/IdleYard_Go/internal/config"
	"github.com/osse101/IdleYard_Go/internal/database/migrations"
)

// Applies embedded migrations. Usage: migrate [up|down|status]
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	db, err := sql.Open("pgx", cfg.GetDBConnString())
	if err != nil {
		slog.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("postgres"); err != nil {
		slog.Error("Failed to set dialect", "error", err)
		os.Exit(1)
	}

	switch command {
	case "up":
		err = goose.Up(db, ".")
	case "down":
		err = goose.Down(db, ".")
	case "status":
		err = goose.Status(db, ".")
	default:
		slog.Error("Unknown command", "command", command)
		os.Exit(1)
	}
	if err != nil {
		slog.Error("Migration failed", "command", command, "error", err)
		os.Exit(1)
	}

	slog.Info("Migration complete", "command", command)
}
