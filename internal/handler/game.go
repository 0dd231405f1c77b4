package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/IdleYard_Go/internal/domain"
	"github.com/osse101/IdleYard_Go/internal/engine"
	"github.com/osse101/IdleYard_Go/internal/logger"
)

// ActionRequest represents one requested game action. Slot fields are
// pointers so an absent slot is distinguishable from slot 0.
type ActionRequest struct {
	Action       string `json:"action" validate:"required,max=64"`
	ProducerKind string `json:"producer_kind,omitempty" validate:"omitempty,max=64"`
	Slot         *int   `json:"slot,omitempty"`
	FromSlot     *int   `json:"from_slot,omitempty"`
	ToSlot       *int   `json:"to_slot,omitempty"`
	Quantity     int64  `json:"quantity,omitempty"`
	Resource     string `json:"resource,omitempty" validate:"omitempty,max=64"`
	Direction    string `json:"direction,omitempty" validate:"omitempty,direction"`
	Code         string `json:"code,omitempty" validate:"omitempty,max=64"`
}

// GameHandler handles game status and action HTTP requests
type GameHandler struct {
	engineSvc engine.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(engineSvc engine.Service) *GameHandler {
	return &GameHandler{engineSvc: engineSvc}
}

// HandleGetStatus returns the authoritative snapshot for one game
// @Summary Get game status
// @Description Folds any accrued yield and returns the resolved snapshot
// @Tags games
// @Produce json
// @Param game path string true "Game ID"
// @Success 200 {object} domain.Snapshot
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /games/{game}/status [get]
func (h *GameHandler) HandleGetStatus(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetAccountID(r, w)
	if !ok {
		return
	}
	gameID := domain.GameID(chi.URLParam(r, "game"))

	snap, err := h.engineSvc.GetStatus(r.Context(), accountID, gameID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, snap)
}

// HandleApplyAction applies one game action atomically
// @Summary Apply a game action
// @Description Validates and applies one action; returns the post-action snapshot
// @Tags games
// @Accept json
// @Produce json
// @Param game path string true "Game ID"
// @Param request body ActionRequest true "Action request"
// @Success 200 {object} domain.Snapshot
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /games/{game}/action [post]
func (h *GameHandler) HandleApplyAction(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	accountID, ok := GetAccountID(r, w)
	if !ok {
		return
	}
	gameID := domain.GameID(chi.URLParam(r, "game"))

	var req ActionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Apply action"); err != nil {
		return
	}

	act := engine.Action{
		Kind:         req.Action,
		ProducerKind: req.ProducerKind,
		Slot:         slotOrDefault(req.Slot),
		FromSlot:     slotOrDefault(req.FromSlot),
		ToSlot:       slotOrDefault(req.ToSlot),
		Quantity:     req.Quantity,
		Resource:     req.Resource,
		Direction:    req.Direction,
		Code:         req.Code,
	}

	snap, err := h.engineSvc.ApplyAction(r.Context(), accountID, gameID, act)
	if err != nil {
		log.Info("Action rejected", "game", gameID, "action", req.Action, "error", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, snap)
}

func slotOrDefault(slot *int) int {
	if slot == nil {
		return -1
	}
	return *slot
}
