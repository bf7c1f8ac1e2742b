// Package events delivers the domain events of committed aggregates.
package events

import (
	"context"
	"log/slog"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
)

// Dispatcher publishes the pending events of aggregates after their unit of work committed.
// Delivery is at most once: a failed publish is logged and the events are dropped, because
// the state change they describe is already durable.
type Dispatcher struct {
	publisher ports.EventPublisher
	logger    *slog.Logger
}

func NewDispatcher(publisher ports.EventPublisher, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		publisher: publisher,
		logger:    logger.With("component", "event_dispatcher"),
	}
}

// Dispatch publishes and then clears the events of every aggregate. A nil Dispatcher only clears them.
func (d *Dispatcher) Dispatch(ctx context.Context, aggregates ...kernel.AggregateRoot) {
	pending := make([]kernel.DomainEvent, 0)
	for _, aggregate := range aggregates {
		pending = append(pending, aggregate.DomainEvents()...)
		aggregate.ClearDomainEvents()
	}

	if d == nil || d.publisher == nil || len(pending) == 0 {
		return
	}

	if err := d.publisher.Publish(ctx, pending...); err != nil {
		d.logger.ErrorContext(ctx, "Failed to publish domain events", "count", len(pending), "error", err)
	}
}
