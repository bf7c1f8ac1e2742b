package order

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
)

const (
	EventOrderCreated   = "order.created"
	EventOrderConfirmed = "order.confirmed"
	EventOrderCancelled = "order.cancelled"
	EventOrderShipped   = "order.shipped"
	EventOrderDelivered = "order.delivered"
)

var (
	_ kernel.DomainEvent = OrderCreated{}
	_ kernel.DomainEvent = OrderConfirmed{}
	_ kernel.DomainEvent = OrderCancelled{}
	_ kernel.DomainEvent = OrderShipped{}
	_ kernel.DomainEvent = OrderDelivered{}
)

type OrderCreated struct {
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	Occurred   time.Time `json:"occurred_at"`
}

func (e OrderCreated) EventName() string     { return EventOrderCreated }
func (e OrderCreated) AggregateID() string   { return e.OrderID }
func (e OrderCreated) OccurredAt() time.Time { return e.Occurred }

// OrderConfirmed carries the confirmed total so consumers need not reload the order.
// TotalAmount and Currency stay empty when the lines are priced in different currencies.
type OrderConfirmed struct {
	OrderID     string    `json:"order_id"`
	CustomerID  string    `json:"customer_id"`
	TotalAmount string    `json:"total_amount,omitempty"`
	Currency    string    `json:"currency,omitempty"`
	ItemCount   int       `json:"item_count"`
	Occurred    time.Time `json:"occurred_at"`
}

func (e OrderConfirmed) EventName() string     { return EventOrderConfirmed }
func (e OrderConfirmed) AggregateID() string   { return e.OrderID }
func (e OrderConfirmed) OccurredAt() time.Time { return e.Occurred }

type OrderCancelled struct {
	OrderID        string    `json:"order_id"`
	PreviousStatus string    `json:"previous_status"`
	Occurred       time.Time `json:"occurred_at"`
}

func (e OrderCancelled) EventName() string     { return EventOrderCancelled }
func (e OrderCancelled) AggregateID() string   { return e.OrderID }
func (e OrderCancelled) OccurredAt() time.Time { return e.Occurred }

type OrderShipped struct {
	OrderID  string    `json:"order_id"`
	Occurred time.Time `json:"occurred_at"`
}

func (e OrderShipped) EventName() string     { return EventOrderShipped }
func (e OrderShipped) AggregateID() string   { return e.OrderID }
func (e OrderShipped) OccurredAt() time.Time { return e.Occurred }

type OrderDelivered struct {
	OrderID  string    `json:"order_id"`
	Occurred time.Time `json:"occurred_at"`
}

func (e OrderDelivered) EventName() string     { return EventOrderDelivered }
func (e OrderDelivered) AggregateID() string   { return e.OrderID }
func (e OrderDelivered) OccurredAt() time.Time { return e.Occurred }
