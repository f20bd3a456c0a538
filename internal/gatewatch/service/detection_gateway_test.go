package service_test

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/gatewatch/server/internal/gatewatch/recognition"
	"github.com/gatewatch/server/internal/gatewatch/service"
	"github.com/gatewatch/server/internal/gatewatch/types"
)

func silentLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func frame(data string) types.Frame {
	return types.Frame{Data: []byte(data), CapturedAt: time.Now().UTC()}
}

func TestDetect_EmptyFrameRejectedBeforeEngine(t *testing.T) {
	eng := recognition.NewStaticEngine()
	gw := service.NewDetectionGateway(eng, service.GatewayConfig{}, silentLogger())

	_, err := gw.Detect(context.Background(), types.Frame{})
	if !errors.Is(err, service.ErrEmptyFrame) {
		t.Fatalf("expected ErrEmptyFrame, got %v", err)
	}
	if eng.Calls() != 0 {
		t.Errorf("engine must not be called for an empty frame, got %d calls", eng.Calls())
	}
}

func TestDetect_OversizeFrameRejectedBeforeEngine(t *testing.T) {
	eng := recognition.NewStaticEngine()
	gw := service.NewDetectionGateway(eng, service.GatewayConfig{MaxFrameBytes: 4}, silentLogger())

	_, err := gw.Detect(context.Background(), frame("12345"))
	if !errors.Is(err, service.ErrFrameTooLarge) {
		t.Fatalf("expected ErrFrameTooLarge, got %v", err)
	}
	if eng.Calls() != 0 {
		t.Errorf("engine must not be called for an oversize frame, got %d calls", eng.Calls())
	}
}

func TestDetect_NormalizesPlateAndConfidence(t *testing.T) {
	eng := recognition.NewStaticEngine(recognition.Scripted{
		Result: recognition.Result{Matched: true, Plate: "  abc123a ", Confidence: 1.4},
	})
	gw := service.NewDetectionGateway(eng, service.GatewayConfig{}, silentLogger())

	out, err := gw.Detect(context.Background(), frame("jpeg"))
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if !out.Matched {
		t.Fatal("expected matched outcome")
	}
	if out.Plate != "ABC123A" {
		t.Errorf("expected normalized plate ABC123A, got %q", out.Plate)
	}
	if out.Confidence != 1.0 {
		t.Errorf("expected confidence clamped to 1.0, got %v", out.Confidence)
	}
}

func TestDetect_NoMatchIsCleanOutcome(t *testing.T) {
	eng := recognition.NewStaticEngine(recognition.Scripted{
		Result: recognition.Result{Matched: false},
	})
	gw := service.NewDetectionGateway(eng, service.GatewayConfig{}, silentLogger())

	out, err := gw.Detect(context.Background(), frame("jpeg"))
	if err != nil {
		t.Fatalf("no-match must not be an error, got %v", err)
	}
	if out.Matched {
		t.Error("expected matched=false")
	}
	if out.Failure != types.FailureNoMatch {
		t.Errorf("expected NO_MATCH, got %q", out.Failure)
	}
}

func TestDetect_EngineErrorClassifiedAsUnavailable(t *testing.T) {
	eng := recognition.NewStaticEngine(recognition.Scripted{
		Err: errors.New("connection refused"),
	})
	gw := service.NewDetectionGateway(eng, service.GatewayConfig{}, silentLogger())

	out, err := gw.Detect(context.Background(), frame("jpeg"))
	if err != nil {
		t.Fatalf("transport failure is an outcome, not a gateway error; got %v", err)
	}
	if out.Failure != types.FailureEngineUnavailable {
		t.Errorf("expected ENGINE_UNAVAILABLE, got %q", out.Failure)
	}
	if out.Matched {
		t.Error("expected matched=false")
	}
}
