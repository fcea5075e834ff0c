// Package main implements the entry point for the task API server,
// a small CRUD service for managing tasks backed by PostgreSQL.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/taskora/task-api/internal/config"
)

// main is the entry point for the task API server. It loads configuration,
// sets up logging, and either runs a one-off migration command or starts
// the HTTP server.
func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up, down, status, version) and exit")
	flag.Parse()

	cfg, appLogger, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if *migrateCmd != "" {
		if err := runMigrationCommand(cfg, *migrateCmd); err != nil {
			appLogger.Error("Migration command failed",
				"command", *migrateCmd,
				"error", err)
			os.Exit(1)
		}
		return
	}

	if err := runServer(cfg, appLogger); err != nil {
		appLogger.Error("Server terminated with error", "error", err)
		os.Exit(1)
	}
}

// initializeApp loads configuration and sets up the logger.
// Returns the loaded config, the configured logger, and any initialization
// error. A missing database URL surfaces here and aborts startup.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := loadAppConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := setupAppLogger(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	return cfg, appLogger, nil
}

// runServer connects to the database, applies pending migrations, and runs
// the HTTP server until shutdown.
func runServer(cfg *config.Config, appLogger *slog.Logger) error {
	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if err := applyMigrations(db, appLogger); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("Error closing database connection", "error", closeErr)
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("Error closing database connection", "error", closeErr)
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(context.Background())
}
