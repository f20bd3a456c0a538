package store

import (
	"context"
	"time"

	"github.com/gatewatch/server/internal/gatewatch/types"
)

// AccessRecord is one immutable ledger entry. ID and RecordedAt are assigned
// by the ledger inside the append transaction; caller-supplied values for
// either are ignored so the ledger's ordering reflects arrival order, not
// client clocks.
type AccessRecord struct {
	ID         int64
	Plate      string
	RecordedAt time.Time
	Status     types.AccessStatus
	Mode       types.AccessMode
	OperatorID *int64   // present only for MANUAL entries
	Confidence *float64 // engine confidence, carried for audit
}

// AccessEntry is a ledger row joined with vehicle/owner/operator metadata.
// Join fields are empty when the referenced entity is absent.
type AccessEntry struct {
	AccessRecord
	OwnerName    string
	OperatorName string
	Brand        string
	Model        string
	VehicleType  string
}

// AccessLedger persists decisions as an append-only audit trail.
type AccessLedger interface {
	// Append writes rec atomically and returns it with the ledger-assigned
	// id and timestamp filled in. On failure nothing is written.
	Append(ctx context.Context, rec AccessRecord) (AccessRecord, error)

	// Get returns one entry with joined metadata, or ErrNotFound.
	Get(ctx context.Context, id int64) (AccessEntry, error)

	// List returns all entries with joined metadata, most recent first.
	List(ctx context.Context) ([]AccessEntry, error)

	// PruneOlderThan deletes records recorded before cutoff and reports how
	// many were removed. Only the retention sweep calls this.
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
