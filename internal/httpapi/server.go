package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gatewatch/server/internal/gatewatch/service"
	"github.com/gatewatch/server/internal/gatewatch/store"
	"github.com/gatewatch/server/internal/gatewatch/types"
)

type Dependencies struct {
	Logger         *log.Logger
	Addr           string
	AccessService  *service.AccessService
	VehicleService *service.VehicleService
	OperatorStore  store.OperatorStore
	EmployeeStore  store.EmployeeStore

	// MaxFrameBytes caps the multipart image field on /v1/detect.
	// Defaults to 10 MiB.
	MaxFrameBytes int
}

type Server struct {
	httpServer     *http.Server
	logger         *log.Logger
	mux            *http.ServeMux
	accessService  *service.AccessService
	vehicleService *service.VehicleService
	operators      store.OperatorStore
	employees      store.EmployeeStore
	maxFrameBytes  int64
}

func NewServer(d Dependencies) *Server {
	mux := http.NewServeMux()

	maxFrame := d.MaxFrameBytes
	if maxFrame <= 0 {
		maxFrame = 10 << 20
	}

	s := &Server{
		logger:         d.Logger,
		mux:            mux,
		accessService:  d.AccessService,
		vehicleService: d.VehicleService,
		operators:      d.OperatorStore,
		employees:      d.EmployeeStore,
		maxFrameBytes:  int64(maxFrame),
	}

	mux.HandleFunc("POST /v1/detect", s.handleDetect)
	mux.HandleFunc("POST /v1/access/manual", s.handleManualAccess)
	mux.HandleFunc("GET /v1/access", s.handleListAccess)

	mux.HandleFunc("GET /v1/vehicles", s.handleListVehicles)
	mux.HandleFunc("POST /v1/vehicles", s.handleCreateVehicle)
	mux.HandleFunc("PUT /v1/vehicles/{plate}", s.handleUpdateVehicle)
	mux.HandleFunc("DELETE /v1/vehicles/{plate}", s.handleDeleteVehicle)

	mux.HandleFunc("GET /v1/operators", s.handleListOperators)
	mux.HandleFunc("GET /v1/employees", s.handleListEmployees)

	handler := loggingMiddleware(d.Logger, mux)

	s.httpServer = &http.Server{
		Addr:              d.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ── Detection ────────────────────────────────────────────────────────────────

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	data, err := s.readFrame(w, r)
	if err != nil {
		writeFrameError(w, err)
		return
	}

	frame := types.Frame{Data: data, CapturedAt: time.Now().UTC()}
	res, err := s.accessService.DetectAndRecord(r.Context(), frame)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyFrame):
			writeError(w, http.StatusBadRequest, "empty_frame", err.Error())
		case errors.Is(err, service.ErrFrameTooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "frame_too_large", err.Error())
		case errors.Is(err, service.ErrEngineUnavailable):
			// Transport failure, not a no-match; the client retries later.
			writeJSON(w, http.StatusServiceUnavailable, types.DetectResponse{
				Matched:       false,
				FailureReason: types.FailureEngineUnavailable,
				ServerTime:    serverTime(),
			})
		default:
			s.logger.Printf("detect error: %v", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		}
		return
	}

	resp := types.DetectResponse{
		Matched:       res.Outcome.Matched,
		FailureReason: res.Outcome.Failure,
		ServerTime:    serverTime(),
	}
	if res.Outcome.Matched {
		resp.Plate = res.Decision.Plate
		resp.Confidence = res.Decision.Confidence
		resp.Status = res.Decision.Status
		resp.RecordID = res.Record.ID
	}
	writeJSON(w, http.StatusOK, resp)
}

// ── Access ledger ────────────────────────────────────────────────────────────

func (s *Server) handleManualAccess(w http.ResponseWriter, r *http.Request) {
	var req types.ManualAccessRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	entry, err := s.accessService.RecordManual(r.Context(), req.Plate, req.OperatorID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingPlate):
			writeError(w, http.StatusBadRequest, "missing_plate", err.Error())
		case errors.Is(err, service.ErrMissingOperator):
			writeError(w, http.StatusBadRequest, "missing_operator", err.Error())
		case errors.Is(err, service.ErrUnknownOperator):
			writeError(w, http.StatusNotFound, "unknown_operator", err.Error())
		default:
			s.logger.Printf("manual access error: %v", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, entryToDTO(entry))
}

func (s *Server) handleListAccess(w http.ResponseWriter, r *http.Request) {
	entries, err := s.accessService.ListAccess(r.Context())
	if err != nil {
		s.logger.Printf("list access error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}

	out := make([]types.AccessEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryToDTO(e))
	}
	writeJSON(w, http.StatusOK, out)
}

// ── Vehicle registry ─────────────────────────────────────────────────────────

func (s *Server) handleListVehicles(w http.ResponseWriter, r *http.Request) {
	listings, err := s.vehicleService.List(r.Context())
	if err != nil {
		s.logger.Printf("list vehicles error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}

	out := make([]types.VehicleResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, vehicleToDTO(l))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req types.VehicleRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	rec, err := vehicleFromDTO(req, true)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_expiry", "expires_at must be RFC 3339")
		return
	}

	created, err := s.vehicleService.Register(r.Context(), rec)
	if err != nil {
		s.writeVehicleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, vehicleToDTO(store.VehicleListing{VehicleRecord: created}))
}

func (s *Server) handleUpdateVehicle(w http.ResponseWriter, r *http.Request) {
	var req types.VehicleRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	req.Plate = r.PathValue("plate")

	rec, err := vehicleFromDTO(req, false)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_expiry", "expires_at must be RFC 3339")
		return
	}

	if err := s.vehicleService.Amend(r.Context(), rec); err != nil {
		s.writeVehicleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteVehicle(w http.ResponseWriter, r *http.Request) {
	if err := s.vehicleService.Remove(r.Context(), r.PathValue("plate")); err != nil {
		s.writeVehicleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeVehicleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidPlate):
		writeError(w, http.StatusBadRequest, "invalid_plate", err.Error())
	case errors.Is(err, service.ErrUnknownEmployee):
		writeError(w, http.StatusNotFound, "unknown_employee", err.Error())
	case errors.Is(err, store.ErrDuplicatePlate):
		// ConflictError passes through unmodified.
		writeError(w, http.StatusConflict, "duplicate_plate", err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "vehicle_not_found", "vehicle not found")
	default:
		s.logger.Printf("vehicle registry error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
	}
}

// ── Directories ──────────────────────────────────────────────────────────────

func (s *Server) handleListOperators(w http.ResponseWriter, r *http.Request) {
	operators, err := s.operators.List(r.Context())
	if err != nil {
		s.logger.Printf("list operators error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}

	out := make([]types.OperatorResponse, 0, len(operators))
	for _, op := range operators {
		out = append(out, types.OperatorResponse{ID: op.ID, Name: op.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := s.employees.List(r.Context())
	if err != nil {
		s.logger.Printf("list employees error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}

	out := make([]types.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, types.EmployeeResponse{ID: e.ID, FullName: e.FullName, Department: e.Department})
	}
	writeJSON(w, http.StatusOK, out)
}

func serverTime() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
