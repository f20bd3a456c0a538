package httpapi

import (
	"errors"
	"io"
	"net/http"
)

// multipartOverhead leaves room for the multipart boundary and headers on
// top of the image payload itself.
const multipartOverhead = 64 << 10

var (
	errMissingImage  = errors.New("multipart field \"image\" is required")
	errFrameTooLarge = errors.New("image exceeds the configured size limit")
)

// readFrame extracts the raw image bytes from the multipart "image" field,
// enforcing the configured frame cap before the payload reaches the
// recognition pipeline.
func (s *Server) readFrame(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxFrameBytes+multipartOverhead)

	f, _, err := r.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errFrameTooLarge
		}
		return nil, errMissingImage
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.maxFrameBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > s.maxFrameBytes {
		return nil, errFrameTooLarge
	}
	return data, nil
}

func writeFrameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errFrameTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "frame_too_large", err.Error())
	case errors.Is(err, errMissingImage):
		writeError(w, http.StatusBadRequest, "missing_image", err.Error())
	default:
		writeError(w, http.StatusBadRequest, "bad_multipart", "could not read multipart body")
	}
}
