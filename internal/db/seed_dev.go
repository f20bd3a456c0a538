package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SeedDev inserts a minimal fixture set so a fresh dev database has something
// to decide against: one employee, one gate operator, and one authorized
// vehicle. Idempotent; prod never calls this.
func SeedDev(ctx context.Context, db *sql.DB) error {
	now := time.Now().UTC().UnixMilli()

	if _, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO employees(employee_id, full_name, department, active, created_at_ms, updated_at_ms)
VALUES (1, 'Dev Employee', 'Engineering', 1, ?, ?);`, now, now); err != nil {
		return fmt.Errorf("seed employees: %w", err)
	}

	if _, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO operators(operator_id, name, active, created_at_ms, updated_at_ms)
VALUES (1, 'Dev Operator', 1, ?, ?);`, now, now); err != nil {
		return fmt.Errorf("seed operators: %w", err)
	}

	if _, err := db.ExecContext(ctx, `
INSERT INTO vehicles(plate, brand, model, vehicle_type, employee_id, authorized, expires_at_ms, created_at_ms, updated_at_ms)
VALUES ('ABC123A', 'Nissan', 'Versa', 'Sedan', 1, 1, NULL, ?, ?)
ON CONFLICT(plate) DO UPDATE SET
  authorized    = 1,
  updated_at_ms = excluded.updated_at_ms;`, now, now); err != nil {
		return fmt.Errorf("seed vehicle ABC123A: %w", err)
	}

	return nil
}
