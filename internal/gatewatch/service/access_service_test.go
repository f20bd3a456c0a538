package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gatewatch/server/internal/gatewatch/recognition"
	"github.com/gatewatch/server/internal/gatewatch/service"
	"github.com/gatewatch/server/internal/gatewatch/store"
	"github.com/gatewatch/server/internal/gatewatch/store/memory"
	"github.com/gatewatch/server/internal/gatewatch/types"
)

// newTestAccessService builds an AccessService over in-memory stores and a
// scripted engine, returning the collaborators tests need to seed and
// inspect.
func newTestAccessService(script ...recognition.Scripted) (*service.AccessService, *memory.VehicleStore, *memory.AccessLedger) {
	vehicles := memory.NewVehicleStore()
	ledger := memory.NewAccessLedger()
	ledger.JoinVehicles(vehicles)
	ledger.PutOperator(7, "G. Torres")
	operators := memory.NewOperatorStore(store.OperatorRecord{ID: 7, Name: "G. Torres", Active: true})

	gateway := service.NewDetectionGateway(recognition.NewStaticEngine(script...), service.GatewayConfig{}, silentLogger())
	resolver := service.NewResolver(vehicles)
	svc := service.NewAccessService(gateway, resolver, ledger, operators, silentLogger())
	return svc, vehicles, ledger
}

func TestDetectAndRecord_AuthorizedPlate(t *testing.T) {
	svc, vehicles, ledger := newTestAccessService(recognition.Scripted{
		Result: recognition.Result{Matched: true, Plate: "ABC123A", Confidence: 0.92},
	})
	vehicles.Put(store.VehicleRecord{Plate: "ABC123A", Authorized: true})

	res, err := svc.DetectAndRecord(context.Background(), frame("jpeg"))
	if err != nil {
		t.Fatalf("DetectAndRecord: %v", err)
	}

	if res.Decision.Status != types.StatusAuthorized {
		t.Errorf("expected AUTHORIZED, got %s", res.Decision.Status)
	}
	if res.Record.ID == 0 {
		t.Error("expected the response to expose the new record id")
	}

	records := ledger.Records()
	if len(records) != 1 {
		t.Fatalf("expected 1 ledger record, got %d", len(records))
	}
	rec := records[0]
	if rec.Mode != types.ModeAutomatic {
		t.Errorf("expected AUTOMATIC mode, got %s", rec.Mode)
	}
	if rec.Status != types.StatusAuthorized {
		t.Errorf("expected AUTHORIZED record, got %s", rec.Status)
	}
	if rec.Confidence == nil || *rec.Confidence != 0.92 {
		t.Errorf("expected confidence 0.92 on the record, got %v", rec.Confidence)
	}
	if rec.OperatorID != nil {
		t.Error("automatic records carry no operator ref")
	}
}

func TestDetectAndRecord_UnknownPlateStillRecorded(t *testing.T) {
	svc, _, ledger := newTestAccessService(recognition.Scripted{
		Result: recognition.Result{Matched: true, Plate: "ZZZ999Z", Confidence: 0.80},
	})

	res, err := svc.DetectAndRecord(context.Background(), frame("jpeg"))
	if err != nil {
		t.Fatalf("DetectAndRecord: %v", err)
	}
	if res.Decision.Status != types.StatusUnrecognized {
		t.Errorf("expected UNRECOGNIZED, got %s", res.Decision.Status)
	}

	records := ledger.Records()
	if len(records) != 1 {
		t.Fatalf("expected 1 ledger record, got %d", len(records))
	}
	if records[0].Status != types.StatusUnrecognized {
		t.Errorf("expected UNRECOGNIZED record, got %s", records[0].Status)
	}
}

func TestDetectAndRecord_NoMatchCreatesNoRecord(t *testing.T) {
	svc, _, ledger := newTestAccessService(recognition.Scripted{
		Result: recognition.Result{Matched: false},
	})

	res, err := svc.DetectAndRecord(context.Background(), frame("jpeg"))
	if err != nil {
		t.Fatalf("no-match must not be an error, got %v", err)
	}
	if res.Outcome.Matched {
		t.Error("expected matched=false")
	}
	if len(ledger.Records()) != 0 {
		t.Errorf("no-match must not create a ledger record, got %d", len(ledger.Records()))
	}
}

func TestDetectAndRecord_EngineDownIsTransportFailure(t *testing.T) {
	svc, _, ledger := newTestAccessService(recognition.Scripted{
		Err: errors.New("dial tcp: connection refused"),
	})

	res, err := svc.DetectAndRecord(context.Background(), frame("jpeg"))
	if !errors.Is(err, service.ErrEngineUnavailable) {
		t.Fatalf("expected ErrEngineUnavailable, got %v", err)
	}
	if res.Outcome.Failure != types.FailureEngineUnavailable {
		t.Errorf("expected classified outcome, got %q", res.Outcome.Failure)
	}
	if len(ledger.Records()) != 0 {
		t.Error("transport failure must not create a ledger record")
	}
}

func TestRecordManual_KnownOperator(t *testing.T) {
	svc, vehicles, ledger := newTestAccessService()
	vehicles.Put(store.VehicleRecord{Plate: "ABC123A", Authorized: true})

	entry, err := svc.RecordManual(context.Background(), "abc123a", 7)
	if err != nil {
		t.Fatalf("RecordManual: %v", err)
	}

	if entry.Mode != types.ModeManual {
		t.Errorf("expected MANUAL mode, got %s", entry.Mode)
	}
	if entry.OperatorID == nil || *entry.OperatorID != 7 {
		t.Errorf("expected operator ref 7, got %v", entry.OperatorID)
	}
	if entry.Status != types.StatusAuthorized {
		t.Errorf("manual entries still resolve a real status, got %s", entry.Status)
	}
	if entry.OperatorName != "G. Torres" {
		t.Errorf("expected operator join, got %q", entry.OperatorName)
	}
	if len(ledger.Records()) != 1 {
		t.Fatalf("expected 1 ledger record, got %d", len(ledger.Records()))
	}
}

func TestRecordManual_UnknownOperatorRejected(t *testing.T) {
	svc, _, ledger := newTestAccessService()

	_, err := svc.RecordManual(context.Background(), "ABC123A", 99)
	if !errors.Is(err, service.ErrUnknownOperator) {
		t.Fatalf("expected ErrUnknownOperator, got %v", err)
	}
	if len(ledger.Records()) != 0 {
		t.Error("rejected manual submission must not reach the ledger")
	}
}

func TestRecordManual_MissingFields(t *testing.T) {
	svc, _, _ := newTestAccessService()

	if _, err := svc.RecordManual(context.Background(), "   ", 7); !errors.Is(err, service.ErrMissingPlate) {
		t.Errorf("expected ErrMissingPlate, got %v", err)
	}
	if _, err := svc.RecordManual(context.Background(), "ABC123A", 0); !errors.Is(err, service.ErrMissingOperator) {
		t.Errorf("expected ErrMissingOperator, got %v", err)
	}
}
