package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/gatewatch/server/internal/gatewatch/service"
	"github.com/gatewatch/server/internal/gatewatch/store"
	"github.com/gatewatch/server/internal/gatewatch/store/memory"
	"github.com/gatewatch/server/internal/gatewatch/types"
)

func TestResolve_AuthorizedNoExpiry(t *testing.T) {
	vs := memory.NewVehicleStore()
	vs.Put(store.VehicleRecord{Plate: "ABC123A", Authorized: true})

	r := service.NewResolver(vs)
	dec, err := r.Resolve(context.Background(), "ABC123A", 0.92)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if dec.Status != types.StatusAuthorized {
		t.Errorf("expected AUTHORIZED, got %s", dec.Status)
	}
	if dec.Confidence != 0.92 {
		t.Errorf("confidence must be carried through, got %v", dec.Confidence)
	}
	if dec.DecidedAt.IsZero() {
		t.Error("expected DecidedAt to be set")
	}
}

func TestResolve_AuthorizedFutureExpiry(t *testing.T) {
	future := time.Now().UTC().Add(24 * time.Hour)
	vs := memory.NewVehicleStore()
	vs.Put(store.VehicleRecord{Plate: "ABC123A", Authorized: true, ExpiresAt: &future})

	r := service.NewResolver(vs)
	dec, err := r.Resolve(context.Background(), "ABC123A", 0.5)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if dec.Status != types.StatusAuthorized {
		t.Errorf("expected AUTHORIZED, got %s", dec.Status)
	}
}

func TestResolve_ExpiredAuthorizationDenied(t *testing.T) {
	past := time.Now().UTC().Add(-time.Hour)
	vs := memory.NewVehicleStore()
	vs.Put(store.VehicleRecord{Plate: "ABC123A", Authorized: true, ExpiresAt: &past})

	r := service.NewResolver(vs)
	dec, err := r.Resolve(context.Background(), "ABC123A", 0.5)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if dec.Status != types.StatusDenied {
		t.Errorf("expected DENIED for expired authorization, got %s", dec.Status)
	}
}

func TestResolve_UnauthorizedDenied(t *testing.T) {
	vs := memory.NewVehicleStore()
	vs.Put(store.VehicleRecord{Plate: "ABC123A", Authorized: false})

	r := service.NewResolver(vs)
	dec, err := r.Resolve(context.Background(), "ABC123A", 0.5)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if dec.Status != types.StatusDenied {
		t.Errorf("expected DENIED, got %s", dec.Status)
	}
}

func TestResolve_AbsentPlateUnrecognized_AnyConfidence(t *testing.T) {
	r := service.NewResolver(memory.NewVehicleStore())

	for _, conf := range []float64{0, 0.5, 0.99} {
		dec, err := r.Resolve(context.Background(), "ZZZ999Z", conf)
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if dec.Status != types.StatusUnrecognized {
			t.Errorf("confidence %v: expected UNRECOGNIZED, got %s", conf, dec.Status)
		}
	}
}
