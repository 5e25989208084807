package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"

	"github.com/sarmadH97/keeyu-task-board/internal/config"
	"github.com/sarmadH97/keeyu-task-board/internal/platform/postgres"
)

// migrationsSourceDir is where `-migrate create` writes new migration
// files. The embedded copy used at runtime picks them up on the next
// build.
const migrationsSourceDir = "internal/platform/postgres/migrations"

// slogGooseLogger forwards goose output to slog. Fatalf intentionally
// does not exit; main decides how to terminate.
type slogGooseLogger struct{}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...))
}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...))
}

// handleMigrations runs the migration command named by the -migrate
// flag in place of serving.
func handleMigrations(cfg *config.Config, migrateCmd, migrationName string, verbose bool) error {
	var args []string
	if migrateCmd == "create" && migrationName != "" {
		args = append(args, migrationName)
	}
	return runMigrations(cfg, migrateCmd, verbose, args...)
}

// runMigrations executes one goose command against the configured
// database. Migration files are embedded in the binary, except for
// create, which writes into the source tree.
func runMigrations(cfg *config.Config, command string, verbose bool, args ...string) error {
	log := slog.Default().With(
		"component", "migrations",
		"run_id", uuid.New().String(),
		"command", command,
	)

	if cfg.Database.URL == "" {
		log.Error("no database URL configured")
		return fmt.Errorf("database URL is empty")
	}
	log.Info("running migration command",
		"url", maskDatabaseURL(cfg.Database.URL),
		"verbose", verbose)

	goose.SetLogger(&slogGooseLogger{})

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	start := time.Now()
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("closing database connection", "error", closeErr)
		}
		log.Info("migration run finished", "duration_ms", time.Since(start).Milliseconds())
	}()

	// Migrations run alone, a small pool is plenty.
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	goose.SetBaseFS(postgres.MigrationsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	goose.SetTableName(postgres.MigrationTableName)

	switch command {
	case "up":
		err = goose.Up(db, postgres.MigrationsDir)
	case "down":
		err = goose.Down(db, postgres.MigrationsDir)
	case "reset":
		err = goose.Reset(db, postgres.MigrationsDir)
	case "status":
		err = goose.Status(db, postgres.MigrationsDir)
	case "version":
		err = goose.Version(db, postgres.MigrationsDir)
	case "create":
		if len(args) == 0 || args[0] == "" {
			return fmt.Errorf("create needs a migration name")
		}
		// Create writes a new file, which the embedded FS cannot do, so
		// it targets the source directory and expects to run from the
		// repository root.
		goose.SetBaseFS(nil)
		dir, pathErr := filepath.Abs(migrationsSourceDir)
		if pathErr != nil {
			return fmt.Errorf("resolve migrations directory: %w", pathErr)
		}
		log.Info("creating migration file", "name", args[0], "directory", dir)
		err = goose.Create(db, dir, args[0], "sql")
	default:
		return fmt.Errorf("unknown migration command %q, want one of up, down, reset, status, version, create", command)
	}

	if err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// maskDatabaseURL replaces any password in the URL before it is logged.
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
