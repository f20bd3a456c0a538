package store

import "context"

// OperatorRecord is one gate operator (the person vouching for a MANUAL
// ledger entry).
type OperatorRecord struct {
	ID     int64
	Name   string
	Active bool
}

type OperatorStore interface {
	// Get returns the operator, or ErrNotFound for unknown or inactive ids.
	Get(ctx context.Context, id int64) (OperatorRecord, error)
	List(ctx context.Context) ([]OperatorRecord, error)
}

// EmployeeRecord is one employee eligible to own registered vehicles.
type EmployeeRecord struct {
	ID         int64
	FullName   string
	Department string
}

type EmployeeStore interface {
	// Exists reports whether an active employee with this id exists.
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]EmployeeRecord, error)
}
