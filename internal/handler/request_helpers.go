package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/osse101/IdleYard_Go/internal/logger"
)

// DecodeAndValidateRequest decodes a JSON request body, validates it and
// writes the error response itself on failure. A non-nil return means
// the handler should stop.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Error(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		http.Error(w, ErrMsgInvalidRequest, http.StatusBadRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// AccountIDHeader carries the caller's account ID
const AccountIDHeader = "X-Account-ID"

// GetAccountID extracts the account ID header, writing the error
// response when it is missing
func GetAccountID(r *http.Request, w http.ResponseWriter) (string, bool) {
	accountID := r.Header.Get(AccountIDHeader)
	if accountID == "" {
		logger.FromContext(r.Context()).Warn("Missing account ID header")
		http.Error(w, ErrMsgMissingAccountHeader, http.StatusBadRequest)
		return "", false
	}
	return accountID, true
}

// GetQueryParam retrieves a required query parameter, writing the error
// response when it is missing
func GetQueryParam(r *http.Request, w http.ResponseWriter, paramName string) (string, bool) {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		logger.FromContext(r.Context()).Warn(fmt.Sprintf("Missing %s query parameter", paramName))
		http.Error(w, fmt.Sprintf(ErrMsgMissingQueryParam, paramName), http.StatusBadRequest)
		return "", false
	}
	return value, true
}
