package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	dbpkg "github.com/gatewatch/server/internal/db"
	"github.com/gatewatch/server/internal/gatewatch/store"
)

type VehicleStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewVehicleStore(db *sql.DB, writer *dbpkg.Worker) *VehicleStore {
	return &VehicleStore{db: db, writer: writer}
}

func (s *VehicleStore) Lookup(ctx context.Context, plate string) (store.VehicleRecord, error) {
	var rec store.VehicleRecord
	var authorized int
	var expiresMs sql.NullInt64

	err := s.db.QueryRowContext(ctx, `
SELECT plate, brand, model, vehicle_type, employee_id, authorized, expires_at_ms
FROM vehicles
WHERE plate = ?;
`, plate).Scan(&rec.Plate, &rec.Brand, &rec.Model, &rec.VehicleType, &rec.EmployeeID, &authorized, &expiresMs)

	if err == sql.ErrNoRows {
		return store.VehicleRecord{}, store.ErrNotFound
	}
	if err != nil {
		return store.VehicleRecord{}, fmt.Errorf("Lookup query: %w", err)
	}

	rec.Authorized = authorized == 1
	if expiresMs.Valid {
		t := time.UnixMilli(expiresMs.Int64).UTC()
		rec.ExpiresAt = &t
	}
	return rec, nil
}

func (s *VehicleStore) Create(ctx context.Context, rec store.VehicleRecord) error {
	nowMs := time.Now().UTC().UnixMilli()

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		// Explicit duplicate check instead of decoding the driver's
		// constraint error; the single-writer worker makes this race-free.
		var one int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM vehicles WHERE plate = ?;`, rec.Plate).Scan(&one)
		if err == nil {
			return store.ErrDuplicatePlate
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("Create duplicate check: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO vehicles(
  plate, brand, model, vehicle_type, employee_id,
  authorized, expires_at_ms, created_at_ms, updated_at_ms
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
`,
			rec.Plate, rec.Brand, rec.Model, rec.VehicleType, rec.EmployeeID,
			boolInt(rec.Authorized), expiresMs(rec.ExpiresAt), nowMs, nowMs,
		); err != nil {
			return fmt.Errorf("Create insert: %w", err)
		}
		return nil
	})
}

func (s *VehicleStore) Update(ctx context.Context, rec store.VehicleRecord) error {
	nowMs := time.Now().UTC().UnixMilli()

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE vehicles
SET brand = ?, model = ?, vehicle_type = ?, employee_id = ?,
    authorized = ?, expires_at_ms = ?, updated_at_ms = ?
WHERE plate = ?;
`,
			rec.Brand, rec.Model, rec.VehicleType, rec.EmployeeID,
			boolInt(rec.Authorized), expiresMs(rec.ExpiresAt), nowMs, rec.Plate,
		)
		if err != nil {
			return fmt.Errorf("Update exec: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("Update rows affected: %w", err)
		}
		if n == 0 {
			return store.ErrNotFound
		}
		return nil
	})
}

func (s *VehicleStore) Delete(ctx context.Context, plate string) error {
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM vehicles WHERE plate = ?;`, plate)
		if err != nil {
			return fmt.Errorf("Delete exec: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("Delete rows affected: %w", err)
		}
		if n == 0 {
			return store.ErrNotFound
		}
		return nil
	})
}

func (s *VehicleStore) List(ctx context.Context) ([]store.VehicleListing, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT v.plate, v.brand, v.model, v.vehicle_type, v.employee_id,
       v.authorized, v.expires_at_ms,
       IFNULL(e.full_name, ''), IFNULL(e.department, '')
FROM vehicles v
LEFT JOIN employees e ON e.employee_id = v.employee_id
ORDER BY v.plate;
`)
	if err != nil {
		return nil, fmt.Errorf("List query: %w", err)
	}
	defer rows.Close()

	var out []store.VehicleListing
	for rows.Next() {
		var l store.VehicleListing
		var authorized int
		var expires sql.NullInt64

		if err := rows.Scan(
			&l.Plate, &l.Brand, &l.Model, &l.VehicleType, &l.EmployeeID,
			&authorized, &expires, &l.OwnerName, &l.Department,
		); err != nil {
			return nil, fmt.Errorf("List scan: %w", err)
		}
		l.Authorized = authorized == 1
		if expires.Valid {
			t := time.UnixMilli(expires.Int64).UTC()
			l.ExpiresAt = &t
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List rows: %w", err)
	}
	return out, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func expiresMs(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().UnixMilli()
}
