package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/IdleYard_Go/internal/domain"
)

// EventSchemaVersion is the version stamped on every published event
const EventSchemaVersion = "1.0"

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"`
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// NewActionAppliedEvent creates the event published after every
// successfully applied action
func NewActionAppliedEvent(accountID string, gameID domain.GameID, action string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeActionApplied),
		Payload: domain.ActionAppliedPayload{
			AccountID: accountID,
			GameID:    string(gameID),
			Action:    action,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewYieldFoldedEvent creates the event published when offline catch-up
// folds accrued yield
func NewYieldFoldedEvent(accountID string, gameID domain.GameID, folded map[string]int64, elapsedSeconds int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeYieldFolded),
		Payload: domain.YieldFoldedPayload{
			AccountID:      accountID,
			GameID:         string(gameID),
			Folded:         folded,
			ElapsedSeconds: elapsedSeconds,
			Timestamp:      time.Now().Unix(),
		},
	}
}

// NewVehicleDispatchedEvent creates the event published when a vehicle
// departs
func NewVehicleDispatchedEvent(accountID string, gameID domain.GameID, direction string, cargoSize int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeVehicleDispatched),
		Payload: domain.VehicleDispatchedPayload{
			AccountID: accountID,
			GameID:    string(gameID),
			Direction: direction,
			CargoSize: cargoSize,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewCodeRedeemedEvent creates the event published on code redemption
func NewCodeRedeemedEvent(accountID string, gameID domain.GameID, code string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeCodeRedeemed),
		Payload: domain.CodeRedeemedPayload{
			AccountID: accountID,
			GameID:    string(gameID),
			Code:      code,
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the event bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers synchronously
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d handler(s) failed for event %s: %v", len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
