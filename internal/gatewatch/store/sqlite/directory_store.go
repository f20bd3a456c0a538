package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gatewatch/server/internal/gatewatch/store"
)

// OperatorStore serves the gate-operator directory. Read-only from the
// core's perspective; rows are managed by the surrounding record-management
// collaborator.
type OperatorStore struct {
	db *sql.DB
}

func NewOperatorStore(db *sql.DB) *OperatorStore {
	return &OperatorStore{db: db}
}

func (s *OperatorStore) Get(ctx context.Context, id int64) (store.OperatorRecord, error) {
	var rec store.OperatorRecord
	var active int

	err := s.db.QueryRowContext(ctx, `
SELECT operator_id, name, active FROM operators WHERE operator_id = ? AND active = 1;
`, id).Scan(&rec.ID, &rec.Name, &active)

	if err == sql.ErrNoRows {
		return store.OperatorRecord{}, store.ErrNotFound
	}
	if err != nil {
		return store.OperatorRecord{}, fmt.Errorf("operator Get: %w", err)
	}

	rec.Active = active == 1
	return rec, nil
}

func (s *OperatorStore) List(ctx context.Context) ([]store.OperatorRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT operator_id, name, active FROM operators WHERE active = 1 ORDER BY name;
`)
	if err != nil {
		return nil, fmt.Errorf("operator List: %w", err)
	}
	defer rows.Close()

	var out []store.OperatorRecord
	for rows.Next() {
		var rec store.OperatorRecord
		var active int
		if err := rows.Scan(&rec.ID, &rec.Name, &active); err != nil {
			return nil, fmt.Errorf("operator List scan: %w", err)
		}
		rec.Active = active == 1
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("operator List rows: %w", err)
	}
	return out, nil
}

// EmployeeStore serves the employee directory, used to validate vehicle
// ownership and join owner names onto reads.
type EmployeeStore struct {
	db *sql.DB
}

func NewEmployeeStore(db *sql.DB) *EmployeeStore {
	return &EmployeeStore{db: db}
}

func (s *EmployeeStore) Exists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
SELECT 1 FROM employees WHERE employee_id = ? AND active = 1;
`, id).Scan(&one)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("employee Exists: %w", err)
	}
	return true, nil
}

func (s *EmployeeStore) List(ctx context.Context) ([]store.EmployeeRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT employee_id, full_name, department FROM employees WHERE active = 1 ORDER BY full_name;
`)
	if err != nil {
		return nil, fmt.Errorf("employee List: %w", err)
	}
	defer rows.Close()

	var out []store.EmployeeRecord
	for rows.Next() {
		var rec store.EmployeeRecord
		if err := rows.Scan(&rec.ID, &rec.FullName, &rec.Department); err != nil {
			return nil, fmt.Errorf("employee List scan: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("employee List rows: %w", err)
	}
	return out, nil
}
