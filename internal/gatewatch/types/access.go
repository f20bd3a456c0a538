package types

import "time"

// AccessStatus is the authorization outcome attached to an access record.
type AccessStatus string

const (
	StatusAuthorized   AccessStatus = "AUTHORIZED"
	StatusDenied       AccessStatus = "DENIED"
	StatusUnrecognized AccessStatus = "UNRECOGNIZED"
)

// AccessMode records how an entry attempt reached the ledger.
type AccessMode string

const (
	ModeAutomatic AccessMode = "AUTOMATIC"
	ModeManual    AccessMode = "MANUAL"
)

// Decision is the authorization outcome derived from a detected plate and the
// registry snapshot at resolution time. It is not persisted directly; it is
// the input to a ledger append.
type Decision struct {
	Plate      string
	Status     AccessStatus
	Confidence float64
	DecidedAt  time.Time
}

// ManualAccessRequest is the body of POST /v1/access/manual.
type ManualAccessRequest struct {
	Plate      string `json:"plate"`
	OperatorID int64  `json:"operator_id"`
}

// AccessEntry is one ledger row joined with vehicle/owner/operator metadata.
// Join fields are empty strings when the referenced entity is absent; a
// missing join never fails a read.
type AccessEntry struct {
	ID           int64        `json:"id"`
	Plate        string       `json:"plate"`
	RecordedAt   string       `json:"recorded_at"`
	Status       AccessStatus `json:"status"`
	Mode         AccessMode   `json:"mode"`
	OperatorID   *int64       `json:"operator_id,omitempty"`
	Confidence   *float64     `json:"confidence,omitempty"`
	OwnerName    string       `json:"owner_name,omitempty"`
	OperatorName string       `json:"operator_name,omitempty"`
	Brand        string       `json:"brand,omitempty"`
	Model        string       `json:"model,omitempty"`
	VehicleType  string       `json:"vehicle_type,omitempty"`
}
