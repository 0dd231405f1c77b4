package metrics

import (
	"context"

	"github.com/osse101/IdleYard_Go/internal/domain"
	"github.com/osse101/IdleYard_Go/internal/event"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.Type(domain.EventTypeActionApplied),
		event.Type(domain.EventTypeYieldFolded),
		event.Type(domain.EventTypeVehicleDispatched),
		event.Type(domain.EventTypeCodeRedeemed),
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch payload := evt.Payload.(type) {
	case domain.ActionAppliedPayload:
		ActionsApplied.WithLabelValues(payload.GameID, payload.Action).Inc()

	case domain.YieldFoldedPayload:
		for resource, amount := range payload.Folded {
			YieldFolded.WithLabelValues(payload.GameID, resource).Add(float64(amount))
		}
		CatchupSeconds.WithLabelValues(payload.GameID).Observe(float64(payload.ElapsedSeconds))

	case domain.VehicleDispatchedPayload:
		VehiclesDispatched.WithLabelValues(payload.GameID).Inc()

	case domain.CodeRedeemedPayload:
		CodesRedeemed.WithLabelValues(payload.GameID).Inc()
	}

	return nil
}
