package memory

import (
	"context"
	"sync"
	"time"

	"github.com/gatewatch/server/internal/gatewatch/store"
)

// AccessLedger is an in-memory append-only ledger for tests and dev
// environments. It mirrors the sqlite ledger's contract: ids and timestamps
// are assigned at append time, reads come back newest-first.
type AccessLedger struct {
	mu      sync.Mutex
	nextID  int64
	records []store.AccessRecord

	// Optional join sources, keyed exactly as the sqlite ledger joins.
	vehicles  *VehicleStore
	operators map[int64]string
}

func NewAccessLedger() *AccessLedger {
	return &AccessLedger{nextID: 1, operators: make(map[int64]string)}
}

// JoinVehicles wires a vehicle store so List/Get can populate vehicle and
// owner metadata.
func (l *AccessLedger) JoinVehicles(vs *VehicleStore) {
	l.vehicles = vs
}

// PutOperator records an operator name for joins. Test seeding helper.
func (l *AccessLedger) PutOperator(id int64, name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.operators[id] = name
}

func (l *AccessLedger) Append(_ context.Context, rec store.AccessRecord) (store.AccessRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec.ID = l.nextID
	l.nextID++
	rec.RecordedAt = time.Now().UTC()
	l.records = append(l.records, rec)
	return rec, nil
}

func (l *AccessLedger) Get(ctx context.Context, id int64) (store.AccessEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, rec := range l.records {
		if rec.ID == id {
			return l.join(ctx, rec), nil
		}
	}
	return store.AccessEntry{}, store.ErrNotFound
}

func (l *AccessLedger) List(ctx context.Context) ([]store.AccessEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]store.AccessEntry, 0, len(l.records))
	for i := len(l.records) - 1; i >= 0; i-- {
		out = append(out, l.join(ctx, l.records[i]))
	}
	return out, nil
}

func (l *AccessLedger) PruneOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.records[:0]
	var deleted int64
	for _, rec := range l.records {
		if rec.RecordedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, rec)
	}
	l.records = kept
	return deleted, nil
}

// Records returns a copy of all appended records in arrival order.
// Test-only helper.
func (l *AccessLedger) Records() []store.AccessRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]store.AccessRecord, len(l.records))
	copy(out, l.records)
	return out
}

func (l *AccessLedger) join(ctx context.Context, rec store.AccessRecord) store.AccessEntry {
	entry := store.AccessEntry{AccessRecord: rec}

	if rec.OperatorID != nil {
		entry.OperatorName = l.operators[*rec.OperatorID]
	}
	if l.vehicles != nil {
		if v, err := l.vehicles.Lookup(ctx, rec.Plate); err == nil {
			entry.Brand = v.Brand
			entry.Model = v.Model
			entry.VehicleType = v.VehicleType
			l.vehicles.mu.RLock()
			entry.OwnerName = l.vehicles.owners[v.EmployeeID]
			l.vehicles.mu.RUnlock()
		}
	}
	return entry
}
