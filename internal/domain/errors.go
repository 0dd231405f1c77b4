package domain

import "errors"

// Error message string constants - single source of truth for error messages
const (
	// Account errors
	ErrMsgAccountNotFound  = "account not found"
	ErrMsgInvalidAccountID = "invalid account id"

	// Game/config errors
	ErrMsgGameNotFound  = "game not found"
	ErrMsgUnknownKind   = "unknown producer kind"
	ErrMsgUnknownAction = "unknown action"

	// Slot errors
	ErrMsgSlotOutOfRange = "slot index out of range"
	ErrMsgSlotOccupied   = "slot is occupied"
	ErrMsgSlotEmpty      = "slot is empty"
	ErrMsgSlotOrder      = "previous slot must be filled first"

	// Economy errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgInsufficientStock = "insufficient stock"
	ErrMsgInvalidQuantity   = "invalid quantity"

	// Producer errors
	ErrMsgNotReady         = "producer is not ready"
	ErrMsgNotGrown         = "producer is not fully grown"
	ErrMsgMaxLevel         = "producer is at max level"
	ErrMsgWorkersFull      = "no worker slots available"
	ErrMsgMergeInvalid     = "producers cannot be merged"
	ErrMsgNoBoard          = "board actions are not available in this game"
	ErrMsgNothingToCollect = "nothing to collect"

	// Vehicle errors
	ErrMsgNoVehicle        = "no vehicle in this game"
	ErrMsgWrongLocation    = "vehicle is not at the required location"
	ErrMsgVehicleInTransit = "vehicle is in transit"
	ErrMsgCargoCapacity    = "cargo capacity exceeded"
	ErrMsgCageCapacity     = "cage capacity exceeded"
	ErrMsgCargoEmpty       = "no cargo to sell"
	ErrMsgCageEmpty        = "no caged producers to release"
	ErrMsgNoFreeSlots      = "no free slots to release into"

	// Quota errors
	ErrMsgQuotaExhausted = "quota exhausted, cooldown in progress"
	ErrMsgOnCooldown     = "action on cooldown"

	// Redeem errors
	ErrMsgCodeUnknown  = "unknown code"
	ErrMsgCodeRedeemed = "code already redeemed"

	// Storage errors
	ErrMsgStorageUnavailable = "storage unavailable"
	ErrMsgTxClosed           = "tx is closed"
)

// Common domain errors.
// Wrap these with fmt.Errorf("%w: %s", domain.ErrXxx, details) for context.
var (
	ErrAccountNotFound  = errors.New(ErrMsgAccountNotFound)
	ErrInvalidAccountID = errors.New(ErrMsgInvalidAccountID)

	ErrGameNotFound  = errors.New(ErrMsgGameNotFound)
	ErrUnknownKind   = errors.New(ErrMsgUnknownKind)
	ErrUnknownAction = errors.New(ErrMsgUnknownAction)

	ErrSlotOutOfRange = errors.New(ErrMsgSlotOutOfRange)
	ErrSlotOccupied   = errors.New(ErrMsgSlotOccupied)
	ErrSlotEmpty      = errors.New(ErrMsgSlotEmpty)
	ErrSlotOrder      = errors.New(ErrMsgSlotOrder)

	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrInsufficientStock = errors.New(ErrMsgInsufficientStock)
	ErrInvalidQuantity   = errors.New(ErrMsgInvalidQuantity)

	ErrNotReady         = errors.New(ErrMsgNotReady)
	ErrNotGrown         = errors.New(ErrMsgNotGrown)
	ErrMaxLevel         = errors.New(ErrMsgMaxLevel)
	ErrWorkersFull      = errors.New(ErrMsgWorkersFull)
	ErrMergeInvalid     = errors.New(ErrMsgMergeInvalid)
	ErrNoBoard          = errors.New(ErrMsgNoBoard)
	ErrNothingToCollect = errors.New(ErrMsgNothingToCollect)

	ErrNoVehicle        = errors.New(ErrMsgNoVehicle)
	ErrWrongLocation    = errors.New(ErrMsgWrongLocation)
	ErrVehicleInTransit = errors.New(ErrMsgVehicleInTransit)
	ErrCargoCapacity    = errors.New(ErrMsgCargoCapacity)
	ErrCageCapacity     = errors.New(ErrMsgCageCapacity)
	ErrCargoEmpty       = errors.New(ErrMsgCargoEmpty)
	ErrCageEmpty        = errors.New(ErrMsgCageEmpty)
	ErrNoFreeSlots      = errors.New(ErrMsgNoFreeSlots)

	ErrQuotaExhausted = errors.New(ErrMsgQuotaExhausted)
	ErrOnCooldown     = errors.New(ErrMsgOnCooldown)

	ErrCodeUnknown  = errors.New(ErrMsgCodeUnknown)
	ErrCodeRedeemed = errors.New(ErrMsgCodeRedeemed)

	ErrStorageUnavailable = errors.New(ErrMsgStorageUnavailable)
)

// ReasonCode classifies rejected actions for machine-readable responses
type ReasonCode string

// Reason codes returned alongside every rejected action
const (
	ReasonValidation   ReasonCode = "VALIDATION"
	ReasonPrecondition ReasonCode = "PRECONDITION"
	ReasonNotFound     ReasonCode = "NOT_FOUND"
	ReasonTransientIO  ReasonCode = "TRANSIENT_IO"
	ReasonInternal     ReasonCode = "INTERNAL"
)

// ReasonFor maps a domain error to its reason code
func ReasonFor(err error) ReasonCode {
	switch {
	case errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrGameNotFound):
		return ReasonNotFound
	case errors.Is(err, ErrUnknownKind),
		errors.Is(err, ErrUnknownAction),
		errors.Is(err, ErrSlotOutOfRange),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrInvalidAccountID):
		return ReasonValidation
	case errors.Is(err, ErrStorageUnavailable):
		return ReasonTransientIO
	case errors.Is(err, ErrSlotOccupied),
		errors.Is(err, ErrSlotEmpty),
		errors.Is(err, ErrSlotOrder),
		errors.Is(err, ErrInsufficientFunds),
		errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrNotReady),
		errors.Is(err, ErrNotGrown),
		errors.Is(err, ErrMaxLevel),
		errors.Is(err, ErrWorkersFull),
		errors.Is(err, ErrMergeInvalid),
		errors.Is(err, ErrNoBoard),
		errors.Is(err, ErrNothingToCollect),
		errors.Is(err, ErrNoVehicle),
		errors.Is(err, ErrWrongLocation),
		errors.Is(err, ErrVehicleInTransit),
		errors.Is(err, ErrCargoCapacity),
		errors.Is(err, ErrCageCapacity),
		errors.Is(err, ErrCargoEmpty),
		errors.Is(err, ErrCageEmpty),
		errors.Is(err, ErrNoFreeSlots),
		errors.Is(err, ErrQuotaExhausted),
		errors.Is(err, ErrOnCooldown),
		errors.Is(err, ErrCodeUnknown),
		errors.Is(err, ErrCodeRedeemed):
		return ReasonPrecondition
	default:
		return ReasonInternal
	}
}
