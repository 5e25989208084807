// Package testdb provides helpers for integration tests that need a
// real Postgres database. Tests gate on the DATABASE_URL environment
// variable and skip when it is absent, so the default `go test ./...`
// run stays self-contained. The schema is migrated at most once per
// test process from the embedded migration files.
package testdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register the pgx database/sql driver
	"github.com/pressly/goose/v3"

	"github.com/sarmadH97/keeyu-task-board/internal/platform/postgres"
)

var (
	migrateOnce sync.Once
	migrateErr  error
)

// IsIntegrationTestEnvironment reports whether an integration test
// database is configured. Tests should skip when this returns false.
func IsIntegrationTestEnvironment() bool {
	return os.Getenv("DATABASE_URL") != ""
}

// GetTestDatabaseURL returns the integration test database URL, failing
// the test when it is not configured. Callers that want to skip instead
// should check IsIntegrationTestEnvironment first.
func GetTestDatabaseURL(t *testing.T) string {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("integration tests need DATABASE_URL to be set")
	}
	return dbURL
}

// GetTestDB opens a connection to the integration test database with
// the schema migrated, and registers a cleanup that closes it.
func GetTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", GetTestDatabaseURL(t))
	if err != nil {
		t.Fatalf("failed to open database connection: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close database connection: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	migrateOnce.Do(func() {
		migrateErr = migrateTestSchema(db)
	})
	if migrateErr != nil {
		t.Fatalf("failed to set up test database schema: %v", migrateErr)
	}

	return db
}

func migrateTestSchema(db *sql.DB) error {
	goose.SetBaseFS(postgres.MigrationsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	goose.SetTableName(postgres.MigrationTableName)

	if err := goose.Up(db, postgres.MigrationsDir); err != nil {
		return fmt.Errorf("failed to bring schema up to date: %w", err)
	}
	return nil
}

// WithTx runs fn inside a transaction that is rolled back when fn
// returns, so store-level tests leave no rows behind. Service-level
// tests cannot use this since the services begin their own
// transactions; those tests clean up through their own fixtures.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Errorf("failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}
