package httpapi

import (
	"time"

	"github.com/gatewatch/server/internal/gatewatch/store"
	"github.com/gatewatch/server/internal/gatewatch/types"
)

// ── Access ledger ────────────────────────────────────────────────────────────

func entryToDTO(e store.AccessEntry) types.AccessEntry {
	return types.AccessEntry{
		ID:           e.ID,
		Plate:        e.Plate,
		RecordedAt:   e.RecordedAt.UTC().Format(time.RFC3339Nano),
		Status:       e.Status,
		Mode:         e.Mode,
		OperatorID:   e.OperatorID,
		Confidence:   e.Confidence,
		OwnerName:    e.OwnerName,
		OperatorName: e.OperatorName,
		Brand:        e.Brand,
		Model:        e.Model,
		VehicleType:  e.VehicleType,
	}
}

// ── Vehicle registry ─────────────────────────────────────────────────────────

func vehicleToDTO(l store.VehicleListing) types.VehicleResponse {
	resp := types.VehicleResponse{
		Plate:       l.Plate,
		Brand:       l.Brand,
		Model:       l.Model,
		VehicleType: l.VehicleType,
		EmployeeID:  l.EmployeeID,
		Authorized:  l.Authorized,
		OwnerName:   l.OwnerName,
		Department:  l.Department,
	}
	if l.ExpiresAt != nil {
		resp.ExpiresAt = l.ExpiresAt.UTC().Format(time.RFC3339Nano)
	}
	return resp
}

// vehicleFromDTO maps a request body to a registry record. When the request
// omits the authorized flag, creation defaults to authorized and updates
// default to unauthorized, so a PUT states the full desired row.
func vehicleFromDTO(req types.VehicleRequest, creating bool) (store.VehicleRecord, error) {
	rec := store.VehicleRecord{
		Plate:       req.Plate,
		Brand:       req.Brand,
		Model:       req.Model,
		VehicleType: req.VehicleType,
		EmployeeID:  req.EmployeeID,
		Authorized:  creating,
	}
	if req.Authorized != nil {
		rec.Authorized = *req.Authorized
	}
	if req.ExpiresAt != "" {
		t, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			return store.VehicleRecord{}, err
		}
		t = t.UTC()
		rec.ExpiresAt = &t
	}
	return rec, nil
}
