package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go-access-admin/internal/model"
)

// Seed provisions the first-run fixtures the dashboard expects: the two
// access layers, a default admin account and the sentinel "unknown" employee
// that unrecognized access events are attached to. Each block only runs when
// its table is empty, so restarts are no-ops.
func (db *DB) Seed(ctx context.Context, adminLogin string, adminPasswordHash string) error {
	var layerCount int
	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM access_layers`).Scan(&layerCount); err != nil {
		return fmt.Errorf("count access layers: %w", err)
	}

	if layerCount == 0 {
		_, err := db.Pool.Exec(ctx,
			`INSERT INTO access_layers (id, name) VALUES ($1, 'admin'), ($2, 'user')`,
			model.AccessLayerAdmin, model.AccessLayerUser)
		if err != nil {
			return fmt.Errorf("seed access layers: %w", err)
		}
		slog.Info("seeded access layers")
	}

	var userCount int
	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&userCount); err != nil {
		return fmt.Errorf("count users: %w", err)
	}

	if userCount == 0 {
		_, err := db.Pool.Exec(ctx,
			`INSERT INTO users (login, password_hash, access_layer_id) VALUES ($1, $2, $3)`,
			adminLogin, adminPasswordHash, model.AccessLayerAdmin)
		if err != nil {
			return fmt.Errorf("seed admin user: %w", err)
		}
		slog.Warn("seeded default admin account; change its password", "login", adminLogin)
	}

	var employeeCount int
	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&employeeCount); err != nil {
		return fmt.Errorf("count employees: %w", err)
	}

	if employeeCount == 0 {
		var unknownID int64
		err := db.Pool.QueryRow(ctx,
			`INSERT INTO employees (name, info, photo_url, is_access) VALUES ('-', '-', '/', FALSE) RETURNING id`).
			Scan(&unknownID)
		if err != nil {
			return fmt.Errorf("seed unknown employee: %w", err)
		}

		_, err = db.Pool.Exec(ctx,
			`INSERT INTO access_logs (employee_id, timestamp, is_known) VALUES ($1, $2, FALSE)`,
			unknownID, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("seed access log: %w", err)
		}
		slog.Info("seeded sentinel employee")
	}

	return nil
}
