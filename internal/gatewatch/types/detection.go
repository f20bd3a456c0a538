package types

import "time"

// Frame is a captured camera image on its way to the detection gateway.
// It is ephemeral: produced by a capture client, consumed by one detection
// call, never persisted.
type Frame struct {
	Data       []byte
	CapturedAt time.Time
}

// FailureReason classifies why a detection produced no usable identifier.
type FailureReason string

const (
	FailureNone FailureReason = ""

	// FailureNoMatch means the engine saw the frame and found no plate.
	// This is a normal outcome, not an error.
	FailureNoMatch FailureReason = "NO_MATCH"

	// FailureEngineUnavailable means the engine was unreachable or timed
	// out. Distinct from a clean no-match.
	FailureEngineUnavailable FailureReason = "ENGINE_UNAVAILABLE"
)

// DetectionOutcome is the gateway's normalized view of one engine call.
// Plate is uppercase and Confidence is clamped to [0,1]; downstream
// components never see engine-specific formatting.
type DetectionOutcome struct {
	Matched    bool
	Plate      string
	Confidence float64
	Failure    FailureReason
}

// DetectResponse is the wire shape returned by POST /v1/detect.
type DetectResponse struct {
	Matched       bool          `json:"matched"`
	Plate         string        `json:"plate,omitempty"`
	Confidence    float64       `json:"confidence,omitempty"`
	Status        AccessStatus  `json:"status,omitempty"`
	RecordID      int64         `json:"record_id,omitempty"`
	FailureReason FailureReason `json:"failure_reason,omitempty"`
	ServerTime    string        `json:"server_time"`
}
