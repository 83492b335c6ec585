package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/elo-ladder/internal/leaderboard"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// decodeJSON reads the request body into v. Malformed bodies are reported as invalid arguments.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed JSON body: %v", leaderboard.ErrInvalidArgument, err)
	}
	return nil
}

// errorStatus maps leaderboard errors to a status code and a metrics reason.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, leaderboard.ErrDuplicateName):
		return http.StatusConflict, "duplicate_name"
	case errors.Is(err, leaderboard.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, leaderboard.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	status, reason := errorStatus(err)
	s.Metrics.IncRejected(operation, reason)
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "operation", operation, "error", err, "request_id", requestIDFromContext(r))
	} else {
		log.Warn("Request rejected", "operation", operation, "reason", reason, "error", err, "request_id", requestIDFromContext(r))
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}
