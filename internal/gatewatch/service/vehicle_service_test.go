package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gatewatch/server/internal/gatewatch/service"
	"github.com/gatewatch/server/internal/gatewatch/store"
	"github.com/gatewatch/server/internal/gatewatch/store/memory"
)

func newTestVehicleService() (*service.VehicleService, *memory.VehicleStore) {
	vehicles := memory.NewVehicleStore()
	employees := memory.NewEmployeeStore(store.EmployeeRecord{ID: 1, FullName: "Laura Mendez"})
	return service.NewVehicleService(vehicles, employees), vehicles
}

func TestRegister_NormalizesAndPersists(t *testing.T) {
	svc, vehicles := newTestVehicleService()

	rec, err := svc.Register(context.Background(), store.VehicleRecord{
		Plate: " abc123a ", EmployeeID: 1, Authorized: true,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Plate != "ABC123A" {
		t.Errorf("expected normalized plate, got %q", rec.Plate)
	}

	if _, err := vehicles.Lookup(context.Background(), "ABC123A"); err != nil {
		t.Errorf("expected vehicle to be persisted: %v", err)
	}
}

func TestRegister_MalformedPlateRejectedBeforeWrite(t *testing.T) {
	svc, vehicles := newTestVehicleService()

	_, err := svc.Register(context.Background(), store.VehicleRecord{
		Plate: "ab12", EmployeeID: 1,
	})
	if !errors.Is(err, service.ErrInvalidPlate) {
		t.Fatalf("expected ErrInvalidPlate, got %v", err)
	}

	listings, _ := vehicles.List(context.Background())
	if len(listings) != 0 {
		t.Error("malformed plate must be rejected before any registry write")
	}
}

func TestRegister_DuplicatePlatePassedThrough(t *testing.T) {
	svc, _ := newTestVehicleService()

	rec := store.VehicleRecord{Plate: "ABC123A", EmployeeID: 1, Authorized: true}
	if _, err := svc.Register(context.Background(), rec); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := svc.Register(context.Background(), rec); !errors.Is(err, store.ErrDuplicatePlate) {
		t.Fatalf("expected ErrDuplicatePlate passed through unmodified, got %v", err)
	}
}

func TestRegister_UnknownEmployeeRejected(t *testing.T) {
	svc, _ := newTestVehicleService()

	_, err := svc.Register(context.Background(), store.VehicleRecord{
		Plate: "ABC123A", EmployeeID: 42,
	})
	if !errors.Is(err, service.ErrUnknownEmployee) {
		t.Fatalf("expected ErrUnknownEmployee, got %v", err)
	}
}

func TestAmendAndRemove(t *testing.T) {
	svc, vehicles := newTestVehicleService()

	if _, err := svc.Register(context.Background(), store.VehicleRecord{
		Plate: "ABC123A", Brand: "Nissan", EmployeeID: 1, Authorized: true,
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.Amend(context.Background(), store.VehicleRecord{
		Plate: "abc123a", Brand: "Toyota", EmployeeID: 1, Authorized: false,
	}); err != nil {
		t.Fatalf("Amend: %v", err)
	}

	rec, err := vehicles.Lookup(context.Background(), "ABC123A")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if rec.Brand != "Toyota" || rec.Authorized {
		t.Errorf("amend not applied: %+v", rec)
	}

	if err := svc.Remove(context.Background(), "ABC123A"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := svc.Remove(context.Background(), "ABC123A"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
