package recognition

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
)

// detectReply is the engine's wire format for POST /detect.
type detectReply struct {
	Success    bool    `json:"success"`
	Plate      string  `json:"plate"`
	Confidence float64 `json:"confidence"`
	Message    string  `json:"message"`
}

// HTTPEngine talks to the recognition engine over HTTP, sending the frame as
// a multipart/form-data "image" field. The supplied client's timeout (or the
// caller's context deadline) bounds every call.
type HTTPEngine struct {
	baseURL string
	client  *http.Client
}

func NewHTTPEngine(baseURL string, client *http.Client) *HTTPEngine {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPEngine{baseURL: baseURL, client: client}
}

func (e *HTTPEngine) Detect(ctx context.Context, image []byte) (Result, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", "capture.jpg")
	if err != nil {
		return Result{}, fmt.Errorf("build multipart: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return Result{}, fmt.Errorf("write image part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return Result{}, fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/detect", &body)
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	// Correlation id so an engine-side log line can be tied back to one frame.
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	resp, err := e.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("engine request %s: %w", reqID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused, then classify as transport.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return Result{}, fmt.Errorf("engine request %s: unexpected status %d", reqID, resp.StatusCode)
	}

	var reply detectReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return Result{}, fmt.Errorf("engine request %s: decode reply: %w", reqID, err)
	}

	// success=false is the engine's clean "no plate in this frame" answer.
	if !reply.Success {
		return Result{Matched: false}, nil
	}

	return Result{
		Matched:    true,
		Plate:      reply.Plate,
		Confidence: reply.Confidence,
	}, nil
}
