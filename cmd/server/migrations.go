package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/taskora/task-api/internal/config"
	"github.com/taskora/task-api/migrations"
)

// slogGooseLogger adapts the goose logger interface to use slog
type slogGooseLogger struct{}

// Printf implements the goose.Logger Printf method by forwarding messages to slog.Info
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...))
}

// Fatalf implements the goose.Logger Fatalf method by forwarding error messages
// to slog.Error. It does NOT call os.Exit, so main keeps control of the
// process exit code.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...))
}

// setupGoose points goose at the embedded migration files and routes its
// output through slog.
func setupGoose() error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(&slogGooseLogger{})

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	return nil
}

// applyMigrations brings the schema up to date on startup. The binary embeds
// its migrations, so a fresh database needs no separate provisioning step.
func applyMigrations(db *sql.DB, logger *slog.Logger) error {
	if err := setupGoose(); err != nil {
		return err
	}

	start := time.Now()
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	logger.Info("Database schema is up to date",
		"version", version,
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}

// runMigrationCommand executes a single goose command against the configured
// database and returns. It backs the -migrate flag.
func runMigrationCommand(cfg *config.Config, command string) error {
	if err := setupGoose(); err != nil {
		return err
	}

	slog.Info("Executing migration command",
		"command", command,
		"url", maskDatabaseURL(cfg.Database.URL))

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("Error closing database connection", "error", closeErr)
		}
	}()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	switch command {
	case "up":
		err = goose.Up(db, ".")
	case "down":
		err = goose.Down(db, ".")
	case "status":
		err = goose.Status(db, ".")
	case "version":
		err = goose.Version(db, ".")
	default:
		return fmt.Errorf(
			"unknown migration command: %s (expected up, down, status, or version)",
			command,
		)
	}

	if err != nil {
		return fmt.Errorf("migration command %q failed: %w", command, err)
	}

	return nil
}

// maskDatabaseURL masks the password in a database URL for safe logging.
func maskDatabaseURL(dbURL string) string {
	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}

	if parsedURL.User != nil {
		username := parsedURL.User.Username()
		parsedURL.User = url.UserPassword(username, "****")
		return parsedURL.String()
	}

	return dbURL
}
