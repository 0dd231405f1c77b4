package domain

// Event type names published by the transaction engine
const (
	EventTypeActionApplied     = "game.action.applied"
	EventTypeYieldFolded       = "game.yield.folded"
	EventTypeVehicleDispatched = "game.vehicle.dispatched"
	EventTypeCodeRedeemed      = "game.code.redeemed"
)

// ActionAppliedPayload is published after every successfully applied action
type ActionAppliedPayload struct {
	AccountID string `json:"account_id"`
	GameID    string `json:"game_id"`
	Action    string `json:"action"`
	Timestamp int64  `json:"timestamp"`
}

// YieldFoldedPayload is published when offline catch-up folds accrued
// yield into the pending pool
type YieldFoldedPayload struct {
	AccountID      string           `json:"account_id"`
	GameID         string           `json:"game_id"`
	Folded         map[string]int64 `json:"folded"`
	ElapsedSeconds int64            `json:"elapsed_seconds"`
	Timestamp      int64            `json:"timestamp"`
}

// VehicleDispatchedPayload is published when a vehicle departs
type VehicleDispatchedPayload struct {
	AccountID string `json:"account_id"`
	GameID    string `json:"game_id"`
	Direction string `json:"direction"`
	CargoSize int64  `json:"cargo_size"`
	Timestamp int64  `json:"timestamp"`
}

// CodeRedeemedPayload is published when a promo code is redeemed
type CodeRedeemedPayload struct {
	AccountID string `json:"account_id"`
	GameID    string `json:"game_id"`
	Code      string `json:"code"`
	Timestamp int64  `json:"timestamp"`
}
