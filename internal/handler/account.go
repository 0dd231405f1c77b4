package handler

import (
	"net/http"

	"github.com/osse101/IdleYard_Go/internal/account"
	"github.com/osse101/IdleYard_Go/internal/logger"
)

// RegisterAccountRequest represents the request to register an account
type RegisterAccountRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
}

// HandleRegisterAccount registers an account, idempotently by username
// @Summary Register an account
// @Description Creates an account or returns the existing one for the username
// @Tags account
// @Accept json
// @Produce json
// @Param request body RegisterAccountRequest true "Registration request"
// @Success 200 {object} domain.Account
// @Failure 400 {object} ValidationErrorResponse
// @Router /account/register [post]
func HandleRegisterAccount(accountSvc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RegisterAccountRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register account"); err != nil {
			return
		}

		acct, err := accountSvc.Register(r.Context(), req.Username)
		if err != nil {
			log.Error("Failed to register account", "error", err, "username", req.Username)
			respondError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, acct)
	}
}

// HandleGetAccount returns the caller's account
// @Summary Get account
// @Description Returns the account identified by the X-Account-ID header
// @Tags account
// @Produce json
// @Success 200 {object} domain.Account
// @Failure 404 {object} ErrorResponse
// @Router /account [get]
func HandleGetAccount(accountSvc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := GetAccountID(r, w)
		if !ok {
			return
		}

		acct, err := accountSvc.GetByID(r.Context(), accountID)
		if err != nil {
			respondError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, acct)
	}
}
