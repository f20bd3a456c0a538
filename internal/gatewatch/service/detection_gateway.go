package service

import (
	"context"
	"log"
	"time"

	"github.com/gatewatch/server/internal/gatewatch/plate"
	"github.com/gatewatch/server/internal/gatewatch/recognition"
	"github.com/gatewatch/server/internal/gatewatch/types"
)

// DetectionGateway shields the rest of the system from recognition-engine
// specifics: it validates the frame before any engine call, bounds the call
// with a timeout, and normalizes the engine's answer into a DetectionOutcome.
type DetectionGateway struct {
	engine        recognition.Engine
	maxFrameBytes int
	timeout       time.Duration
	logger        *log.Logger
}

type GatewayConfig struct {
	// MaxFrameBytes rejects oversize payloads before the engine sees them.
	MaxFrameBytes int

	// Timeout bounds each engine call. Defaults to 5s.
	Timeout time.Duration
}

func NewDetectionGateway(engine recognition.Engine, cfg GatewayConfig, logger *log.Logger) *DetectionGateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	maxBytes := cfg.MaxFrameBytes
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	return &DetectionGateway{
		engine:        engine,
		maxFrameBytes: maxBytes,
		timeout:       timeout,
		logger:        logger,
	}
}

// Detect runs one frame through the engine. Input problems return an error;
// engine unreachability is an outcome with FailureEngineUnavailable, and a
// clean no-match is an outcome with FailureNoMatch. Neither is an error and
// a no-match is never logged as one.
func (g *DetectionGateway) Detect(ctx context.Context, frame types.Frame) (types.DetectionOutcome, error) {
	if len(frame.Data) == 0 {
		return types.DetectionOutcome{}, ErrEmptyFrame
	}
	if len(frame.Data) > g.maxFrameBytes {
		return types.DetectionOutcome{}, ErrFrameTooLarge
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	res, err := g.engine.Detect(ctx, frame.Data)
	if err != nil {
		g.logger.Printf("recognition engine unavailable: %v", err)
		return types.DetectionOutcome{
			Matched: false,
			Failure: types.FailureEngineUnavailable,
		}, nil
	}

	if !res.Matched {
		return types.DetectionOutcome{
			Matched: false,
			Failure: types.FailureNoMatch,
		}, nil
	}

	return types.DetectionOutcome{
		Matched:    true,
		Plate:      plate.Normalize(res.Plate),
		Confidence: clamp01(res.Confidence),
	}, nil
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
