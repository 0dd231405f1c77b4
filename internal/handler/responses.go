package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/osse101/IdleYard_Go/internal/domain"
)

// Standard response types for consistent API responses

// ErrorResponse represents a rejected request. Reason carries the
// machine-readable classification so clients can retry transient
// failures and surface precondition failures as gameplay feedback.
type ErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent; all we can do is log
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response with the reason code derived
// from the error
func respondError(w http.ResponseWriter, err error) {
	reason := domain.ReasonFor(err)
	respondJSON(w, statusForReason(reason), ErrorResponse{
		Error:  err.Error(),
		Reason: string(reason),
	})
}

// statusForReason maps reason codes to HTTP status codes
func statusForReason(reason domain.ReasonCode) int {
	switch reason {
	case domain.ReasonValidation:
		return http.StatusBadRequest
	case domain.ReasonPrecondition:
		return http.StatusConflict
	case domain.ReasonNotFound:
		return http.StatusNotFound
	case domain.ReasonTransientIO:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
