// Package ports defines the contracts between the ordering core and its adapters.
// Implementations live under internal/adapters/out.
package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are always loaded together with their items.
//
// Missing orders are reported as *errs.ObjectNotFoundError.
type OrderRepository interface {
	// Save inserts an order whose version is 0 and updates it otherwise. Updates only
	// succeed when the stored version still equals the aggregate's version; a stale
	// aggregate yields *errs.VersionIsInvalidError. On success the aggregate version
	// is incremented.
	Save(ctx context.Context, aggregate *order.Order) error

	// GetByID retrieves an order with all of its items.
	GetByID(ctx context.Context, id kernel.OrderID) (*order.Order, error)

	// GetByIDWithItems is GetByID under the name callers use when they rely on items being loaded.
	GetByIDWithItems(ctx context.Context, id kernel.OrderID) (*order.Order, error)

	// Delete removes the order and its items.
	Delete(ctx context.Context, id kernel.OrderID) error

	Exists(ctx context.Context, id kernel.OrderID) (bool, error)

	// GetOrdersByCustomer returns the customer's orders, oldest first.
	GetOrdersByCustomer(ctx context.Context, customerID kernel.CustomerID) ([]*order.Order, error)

	// GetDraftsCreatedBefore returns Draft orders dated strictly before cutoff, oldest first.
	GetDraftsCreatedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
