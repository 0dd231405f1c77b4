package event

import (
	"context"
	"time"

	"github.com/osse101/IdleYard_Go/internal/logger"
)

// ResilientConfig configures the ResilientPublisher
type ResilientConfig struct {
	MaxRetries     int
	RetryDelay     time.Duration
	DeadLetterPath string
}

// ResilientPublisher wraps an event bus with retry logic and a dead-letter
// file for events that exhaust their retries
type ResilientPublisher struct {
	inner      Bus
	config     ResilientConfig
	deadLetter *DeadLetterWriter
}

// NewResilientPublisher creates a new ResilientPublisher
func NewResilientPublisher(inner Bus, config ResilientConfig) (*ResilientPublisher, error) {
	dlw, err := NewDeadLetterWriter(config.DeadLetterPath)
	if err != nil {
		return nil, err
	}
	return &ResilientPublisher{
		inner:      inner,
		config:     config,
		deadLetter: dlw,
	}, nil
}

// Publish attempts to publish an event. On failure it hands the event to a
// background retry loop and returns nil; game mutations never fail because
// a subscriber did.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return nil
	}

	logger.Warn("Failed to publish event, initiating async retry",
		"event_type", event.Type,
		"error", err,
		"retries", p.config.MaxRetries)

	go p.retryLoop(event)

	return nil
}

func (p *ResilientPublisher) retryLoop(event Event) {
	// Detached context; the originating request may already be done
	ctx := context.Background()

	var lastErr error
	for i := 1; i <= p.config.MaxRetries; i++ {
		time.Sleep(CalculateRetryDelay(p.config.RetryDelay, i))

		lastErr = p.inner.Publish(ctx, event)
		if lastErr == nil {
			logger.Info("Successfully published event after retry",
				"event_type", event.Type,
				"attempt", i)
			return
		}

		logger.Warn("Retry failed",
			"event_type", event.Type,
			"attempt", i,
			"error", lastErr)
	}

	if err := p.deadLetter.Write(event, p.config.MaxRetries, lastErr); err != nil {
		logger.Error("Failed to write to dead letter file", "error", err)
	}
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

// Close releases the dead-letter file
func (p *ResilientPublisher) Close() error {
	return p.deadLetter.Close()
}
