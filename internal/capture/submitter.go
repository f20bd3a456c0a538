package capture

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gatewatch/server/internal/gatewatch/types"
)

// HTTPSubmitter posts frames to the gate server's detection endpoint and
// decodes the verdict. A 503 decodes like any other reply: the body carries
// the failure reason, so the scheduler still gets a classified outcome.
type HTTPSubmitter struct {
	baseURL string
	client  *http.Client
}

func NewHTTPSubmitter(baseURL string, client *http.Client) *HTTPSubmitter {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSubmitter{baseURL: baseURL, client: client}
}

func (s *HTTPSubmitter) Submit(ctx context.Context, frame types.Frame) (types.DetectResponse, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", "capture.jpg")
	if err != nil {
		return types.DetectResponse{}, fmt.Errorf("build multipart: %w", err)
	}
	if _, err := part.Write(frame.Data); err != nil {
		return types.DetectResponse{}, fmt.Errorf("write image part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return types.DetectResponse{}, fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/detect", &body)
	if err != nil {
		return types.DetectResponse{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return types.DetectResponse{}, fmt.Errorf("detect request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusServiceUnavailable:
	default:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return types.DetectResponse{}, fmt.Errorf("detect request: unexpected status %d", resp.StatusCode)
	}

	var dr types.DetectResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return types.DetectResponse{}, fmt.Errorf("decode verdict: %w", err)
	}
	return dr, nil
}
