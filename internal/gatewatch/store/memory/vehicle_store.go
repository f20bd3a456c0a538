package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gatewatch/server/internal/gatewatch/store"
)

// VehicleStore is an in-memory vehicle registry for tests and dev
// environments.
type VehicleStore struct {
	mu       sync.RWMutex
	vehicles map[string]store.VehicleRecord
	owners   map[int64]string // employee id -> name, for list joins
}

func NewVehicleStore() *VehicleStore {
	return &VehicleStore{
		vehicles: make(map[string]store.VehicleRecord),
		owners:   make(map[int64]string),
	}
}

// Put registers or replaces a vehicle directly, without the Create checks.
// Test seeding helper.
func (s *VehicleStore) Put(rec store.VehicleRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicles[rec.Plate] = rec
}

// PutOwner records an employee name for list joins. Test seeding helper.
func (s *VehicleStore) PutOwner(id int64, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owners[id] = name
}

func (s *VehicleStore) Lookup(_ context.Context, plate string) (store.VehicleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.vehicles[plate]
	if !ok {
		return store.VehicleRecord{}, store.ErrNotFound
	}
	return rec, nil
}

func (s *VehicleStore) Create(_ context.Context, rec store.VehicleRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.vehicles[rec.Plate]; ok {
		return store.ErrDuplicatePlate
	}
	s.vehicles[rec.Plate] = rec
	return nil
}

func (s *VehicleStore) Update(_ context.Context, rec store.VehicleRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.vehicles[rec.Plate]; !ok {
		return store.ErrNotFound
	}
	s.vehicles[rec.Plate] = rec
	return nil
}

func (s *VehicleStore) Delete(_ context.Context, plate string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.vehicles[plate]; !ok {
		return store.ErrNotFound
	}
	delete(s.vehicles, plate)
	return nil
}

func (s *VehicleStore) List(_ context.Context) ([]store.VehicleListing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.VehicleListing, 0, len(s.vehicles))
	for _, rec := range s.vehicles {
		out = append(out, store.VehicleListing{
			VehicleRecord: rec,
			OwnerName:     s.owners[rec.EmployeeID],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Plate < out[j].Plate })
	return out, nil
}
