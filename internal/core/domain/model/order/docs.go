// Package order contains the Order aggregate of the ordering domain.
//
// The package includes:
//   - Order: the aggregate root that owns the order lines and the status lifecycle
//   - OrderItem: an order line, only handed out as a copy
//   - Status: the Draft -> Confirmed -> Shipped -> Delivered state machine with cancellation
//   - OrderCreated, OrderConfirmed, OrderCancelled, OrderShipped, OrderDelivered: domain events
//
// Key business rules:
//   - items can only be added or removed while the order is a Draft
//   - adding a product that is already on the order increases the existing line
//   - an order without items cannot be confirmed
//   - shipped and delivered orders cannot be cancelled
package order
