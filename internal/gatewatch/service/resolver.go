package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gatewatch/server/internal/gatewatch/store"
	"github.com/gatewatch/server/internal/gatewatch/types"
)

// Resolver maps a recognized plate to an access decision against the current
// registry snapshot. One registry read per call, no retry, no cache:
// registry rows can change between calls and each decision must reflect the
// state at its own moment.
type Resolver struct {
	vehicles store.VehicleStore
}

func NewResolver(vehicles store.VehicleStore) *Resolver {
	return &Resolver{vehicles: vehicles}
}

// Resolve applies the authorization policy in order: unknown plate is
// UNRECOGNIZED; a registered, authorized vehicle with no expiry or a future
// expiry is AUTHORIZED; everything else is DENIED. Confidence is carried
// through for audit and never consulted.
func (r *Resolver) Resolve(ctx context.Context, plate string, confidence float64) (types.Decision, error) {
	now := time.Now().UTC()

	rec, err := r.vehicles.Lookup(ctx, plate)
	if errors.Is(err, store.ErrNotFound) {
		return types.Decision{
			Plate:      plate,
			Status:     types.StatusUnrecognized,
			Confidence: confidence,
			DecidedAt:  now,
		}, nil
	}
	if err != nil {
		return types.Decision{}, fmt.Errorf("registry lookup: %w", err)
	}

	status := types.StatusDenied
	if rec.Authorized && (rec.ExpiresAt == nil || rec.ExpiresAt.After(now)) {
		status = types.StatusAuthorized
	}

	return types.Decision{
		Plate:      plate,
		Status:     status,
		Confidence: confidence,
		DecidedAt:  now,
	}, nil
}
