package postgres

import "embed"

// MigrationTableName is where goose records which migrations have run.
const MigrationTableName = "schema_migrations"

// MigrationsDir is the path of the migration files inside MigrationsFS.
const MigrationsDir = "migrations"

// MigrationsFS holds the schema migrations compiled into the binary, so
// the server and the test helpers run the same migrations without
// locating a directory on disk first. Pass it to goose.SetBaseFS and
// run commands against MigrationsDir.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
