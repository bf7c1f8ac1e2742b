package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate and published after it was persisted.
type DomainEvent interface {
	EventName() string
	AggregateID() string
	OccurredAt() time.Time
}

// AggregateRoot is implemented by aggregates that record domain events.
type AggregateRoot interface {
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}
