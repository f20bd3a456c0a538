package service

import (
	"context"
	"fmt"

	"github.com/gatewatch/server/internal/gatewatch/plate"
	"github.com/gatewatch/server/internal/gatewatch/store"
)

// VehicleService fronts the registry's write surface. Its one policy is the
// plate format check, applied before any write. The detection decision path
// is separate and records whatever the engine read.
type VehicleService struct {
	vehicles  store.VehicleStore
	employees store.EmployeeStore
}

func NewVehicleService(vehicles store.VehicleStore, employees store.EmployeeStore) *VehicleService {
	return &VehicleService{vehicles: vehicles, employees: employees}
}

// Register validates and creates a registry entry. A duplicate plate comes
// back as store.ErrDuplicatePlate, passed through unmodified.
func (s *VehicleService) Register(ctx context.Context, rec store.VehicleRecord) (store.VehicleRecord, error) {
	rec.Plate = plate.Normalize(rec.Plate)
	if !plate.Valid(rec.Plate) {
		return store.VehicleRecord{}, ErrInvalidPlate
	}

	ok, err := s.employees.Exists(ctx, rec.EmployeeID)
	if err != nil {
		return store.VehicleRecord{}, fmt.Errorf("employee check: %w", err)
	}
	if !ok {
		return store.VehicleRecord{}, ErrUnknownEmployee
	}

	if err := s.vehicles.Create(ctx, rec); err != nil {
		return store.VehicleRecord{}, err
	}
	return rec, nil
}

// Amend updates an existing registry entry. The plate is the key and cannot
// change; store.ErrNotFound passes through for an unknown plate.
func (s *VehicleService) Amend(ctx context.Context, rec store.VehicleRecord) error {
	rec.Plate = plate.Normalize(rec.Plate)

	ok, err := s.employees.Exists(ctx, rec.EmployeeID)
	if err != nil {
		return fmt.Errorf("employee check: %w", err)
	}
	if !ok {
		return ErrUnknownEmployee
	}

	return s.vehicles.Update(ctx, rec)
}

// Remove deletes a registry entry; store.ErrNotFound passes through.
func (s *VehicleService) Remove(ctx context.Context, plateID string) error {
	return s.vehicles.Delete(ctx, plate.Normalize(plateID))
}

func (s *VehicleService) List(ctx context.Context) ([]store.VehicleListing, error) {
	return s.vehicles.List(ctx)
}
