package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jonwraymond/jugsolver/observe"
	"github.com/jonwraymond/jugsolver/puzzle"
	"github.com/jonwraymond/jugsolver/service"
)

const internalErrorMessage = service.InternalMessage

// SolveRequest is the POST /solve body. Missing fields are zero and unknown
// fields are ignored.
type SolveRequest struct {
	XCapacity    int `json:"x_capacity"`
	YCapacity    int `json:"y_capacity"`
	AmountWanted int `json:"z_amount_wanted"`
}

// Key returns the puzzle instance the request describes.
func (r SolveRequest) Key() puzzle.ProblemKey {
	return puzzle.ProblemKey{X: r.XCapacity, Y: r.YCapacity, Target: r.AmountWanted}
}

// SolveResponse is the POST /solve success body.
type SolveResponse struct {
	Solution puzzle.Solution `json:"solution"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)

	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := s.svc.SolveResult(r.Context(), req.Key())
	if err != nil {
		s.writeSolveError(w, r, err)
		return
	}

	if res.CacheHit() {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	writeJSON(w, http.StatusOK, SolveResponse{Solution: res.Solution})
}

// writeSolveError maps a Solve error to its response. Client errors carry
// their fixed message; internal errors are logged and hidden.
func (s *Server) writeSolveError(w http.ResponseWriter, r *http.Request, err error) {
	switch service.Classify(err) {
	case service.KindInvalidInput, service.KindInfeasible, service.KindTooLarge:
		writeError(w, http.StatusBadRequest, service.PublicMessage(err))
	default:
		s.logger.Error(r.Context(), "solve failed",
			observe.Field{Key: "error", Value: err.Error()},
			observe.Field{Key: "request_id", Value: RequestIDFromContext(r.Context())},
		)
		writeError(w, http.StatusInternalServerError, internalErrorMessage)
	}
}

func (s *Server) handleOpenAPISpec(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.openAPISpec)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
