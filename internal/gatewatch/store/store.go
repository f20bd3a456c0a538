// Package store defines the persistence boundaries of the core: the vehicle
// registry (read-mostly, owned by the registration collaborator), the
// append-only access ledger, and the operator/employee directories used for
// metadata joins.
package store

import "errors"

var (
	// ErrNotFound is returned when a referenced vehicle, operator,
	// employee, or record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicatePlate is returned by VehicleStore.Create when the plate
	// is already registered. Passed through to the caller unmodified.
	ErrDuplicatePlate = errors.New("plate already registered")
)
