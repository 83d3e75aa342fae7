package database

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
)

//go:embed migrations/001_initial.up.sql
var initialSchemaSQL string

// EnsureSchema applies the initial schema when any of the core tables is
// missing. There is no migration history table: the schema is applied as one
// idempotent unit, which is all a single-version deployment needs.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if db == nil || db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	present, err := db.schemaPresent(ctx)
	if err != nil {
		return fmt.Errorf("check schema: %w", err)
	}
	if present {
		return nil
	}

	slog.Info("applying initial database schema")
	if _, err := db.Pool.Exec(ctx, initialSchemaSQL); err != nil {
		return fmt.Errorf("apply initial schema: %w", err)
	}

	present, err = db.schemaPresent(ctx)
	if err != nil {
		return fmt.Errorf("verify schema: %w", err)
	}
	if !present {
		return fmt.Errorf("schema apply finished but core tables are still missing")
	}

	return nil
}

func (db *DB) schemaPresent(ctx context.Context) (bool, error) {
	coreTables := []string{"access_layers", "users", "employees", "access_logs"}

	var found int
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM information_schema.tables
		 WHERE table_schema = 'public' AND table_name = ANY($1)`,
		coreTables,
	).Scan(&found)
	if err != nil {
		return false, err
	}

	return found == len(coreTables), nil
}
