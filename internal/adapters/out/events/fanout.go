package events

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
)

// Fanout publishes to every publisher in order and joins their errors.
type Fanout []ports.EventPublisher

func (f Fanout) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, events...); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
