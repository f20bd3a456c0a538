// Package recognition models the external plate recognition engine as a
// narrow capability: one image in, one identifier-with-confidence out. The
// rest of the system depends only on the Engine interface so the production
// HTTP client can be swapped for a deterministic double in tests.
package recognition

import "context"

// Result is the engine's raw answer for one frame. Plate casing and
// confidence range are engine-specific here; the detection gateway
// normalizes both before anything downstream sees them.
type Result struct {
	Matched    bool
	Plate      string
	Confidence float64
}

// Engine is the recognition capability. Detect returns an error only for
// transport-level failures (engine unreachable, timed out, malformed reply);
// a frame with no recognizable plate is a successful Result with
// Matched=false.
type Engine interface {
	Detect(ctx context.Context, image []byte) (Result, error)
}
