package service

import "errors"

var (
	// Input errors: reported synchronously, never retried.
	ErrEmptyFrame      = errors.New("image payload is required")
	ErrFrameTooLarge   = errors.New("image payload exceeds the maximum size")
	ErrMissingPlate    = errors.New("plate is required")
	ErrInvalidPlate    = errors.New("plate must match format AAA000A")
	ErrMissingOperator = errors.New("operator_id is required")

	// Referenced entities.
	ErrUnknownOperator = errors.New("operator not found")
	ErrUnknownEmployee = errors.New("employee not found")

	// Transport: the recognition engine was unreachable or timed out.
	// Distinct from a clean no-match, which is not an error at all.
	ErrEngineUnavailable = errors.New("recognition engine unavailable")
)
