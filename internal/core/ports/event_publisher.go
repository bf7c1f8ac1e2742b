package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
)

// EventPublisher delivers committed domain events to interested parties.
type EventPublisher interface {
	Publish(ctx context.Context, events ...kernel.DomainEvent) error
}
