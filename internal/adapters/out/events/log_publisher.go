package events

import (
	"context"
	"log/slog"

	"ordering/internal/core/domain/model/kernel"
)

// LogPublisher writes every event to a structured logger. It is the publisher used when
// no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "event_log")}
}

func (p *LogPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	for _, e := range events {
		p.logger.InfoContext(ctx, "Domain event",
			"event", e.EventName(),
			"aggregate_id", e.AggregateID(),
			"occurred_at", e.OccurredAt(),
			"payload", e,
		)
	}
	return nil
}
