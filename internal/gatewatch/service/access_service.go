package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gatewatch/server/internal/gatewatch/store"
	"github.com/gatewatch/server/internal/gatewatch/types"
)

// AccessService runs the detect-to-decision-to-ledger sequence. The registry
// read and the ledger append are deliberately separate transactions: a record
// always reflects the registry at decision time, and a concurrent registry
// edit between the two is an accepted race.
type AccessService struct {
	gateway   *DetectionGateway
	resolver  *Resolver
	ledger    store.AccessLedger
	operators store.OperatorStore
	logger    *log.Logger
}

func NewAccessService(
	gateway *DetectionGateway,
	resolver *Resolver,
	ledger store.AccessLedger,
	operators store.OperatorStore,
	logger *log.Logger,
) *AccessService {
	return &AccessService{
		gateway:   gateway,
		resolver:  resolver,
		ledger:    ledger,
		operators: operators,
		logger:    logger,
	}
}

// DetectionResult bundles one automatic round trip. Decision and Record are
// zero unless the outcome matched.
type DetectionResult struct {
	Outcome  types.DetectionOutcome
	Decision types.Decision
	Record   store.AccessRecord
}

// DetectAndRecord runs one frame end to end: gateway, resolver, ledger. A
// no-match outcome creates no record and is not an error. An unreachable
// engine returns ErrEngineUnavailable alongside the classified outcome so the
// boundary can tell transport failure from a clean miss.
func (s *AccessService) DetectAndRecord(ctx context.Context, frame types.Frame) (DetectionResult, error) {
	outcome, err := s.gateway.Detect(ctx, frame)
	if err != nil {
		return DetectionResult{}, err
	}

	if outcome.Failure == types.FailureEngineUnavailable {
		return DetectionResult{Outcome: outcome}, ErrEngineUnavailable
	}
	if !outcome.Matched {
		return DetectionResult{Outcome: outcome}, nil
	}

	decision, err := s.resolver.Resolve(ctx, outcome.Plate, outcome.Confidence)
	if err != nil {
		return DetectionResult{}, err
	}

	confidence := decision.Confidence
	record, err := s.ledger.Append(ctx, store.AccessRecord{
		Plate:      decision.Plate,
		Status:     decision.Status,
		Mode:       types.ModeAutomatic,
		Confidence: &confidence,
	})
	if err != nil {
		return DetectionResult{}, fmt.Errorf("append access record: %w", err)
	}

	s.logger.Printf("detect plate=%s status=%s record=%d", decision.Plate, decision.Status, record.ID)

	return DetectionResult{Outcome: outcome, Decision: decision, Record: record}, nil
}

// RecordManual logs an operator-vouched entry attempt. The resolver still
// runs so the record carries a real authorization status; the operator must
// exist and be active.
func (s *AccessService) RecordManual(ctx context.Context, plateID string, operatorID int64) (store.AccessEntry, error) {
	plateID = strings.ToUpper(strings.TrimSpace(plateID))
	if plateID == "" {
		return store.AccessEntry{}, ErrMissingPlate
	}
	if operatorID <= 0 {
		return store.AccessEntry{}, ErrMissingOperator
	}

	if _, err := s.operators.Get(ctx, operatorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.AccessEntry{}, ErrUnknownOperator
		}
		return store.AccessEntry{}, fmt.Errorf("operator lookup: %w", err)
	}

	decision, err := s.resolver.Resolve(ctx, plateID, 0)
	if err != nil {
		return store.AccessEntry{}, err
	}

	record, err := s.ledger.Append(ctx, store.AccessRecord{
		Plate:      decision.Plate,
		Status:     decision.Status,
		Mode:       types.ModeManual,
		OperatorID: &operatorID,
	})
	if err != nil {
		return store.AccessEntry{}, fmt.Errorf("append access record: %w", err)
	}

	s.logger.Printf("manual entry plate=%s status=%s operator=%d record=%d",
		decision.Plate, decision.Status, operatorID, record.ID)

	return s.ledger.Get(ctx, record.ID)
}

// ListAccess returns the ledger newest-first with joined metadata.
func (s *AccessService) ListAccess(ctx context.Context) ([]store.AccessEntry, error) {
	return s.ledger.List(ctx)
}
