package store

import (
	"context"
	"time"
)

// VehicleRecord is one row of the vehicle registry. Plate is the normalized
// uppercase registry key. ExpiresAt nil means the authorization never
// expires.
type VehicleRecord struct {
	Plate       string
	Brand       string
	Model       string
	VehicleType string
	EmployeeID  int64
	Authorized  bool
	ExpiresAt   *time.Time
}

// VehicleListing is a registry row joined with its owner, for list views.
type VehicleListing struct {
	VehicleRecord
	OwnerName  string
	Department string
}

// VehicleStore is the registry boundary. The core reads it through Lookup;
// the Create/Update/Delete surface belongs to the registration collaborator
// and enforces no policy beyond key uniqueness and owner existence.
type VehicleStore interface {
	// Lookup returns the registry snapshot for plate, or ErrNotFound.
	Lookup(ctx context.Context, plate string) (VehicleRecord, error)

	Create(ctx context.Context, rec VehicleRecord) error
	Update(ctx context.Context, rec VehicleRecord) error
	Delete(ctx context.Context, plate string) error
	List(ctx context.Context) ([]VehicleListing, error)
}
