package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
)

// InventoryService reports and reserves product stock.
type InventoryService interface {
	// GetAvailableStock returns the number of units that can still be ordered, never negative.
	GetAvailableStock(ctx context.Context, productID kernel.ProductID) (int, error)

	// ReserveStock takes quantity units out of the available stock. It fails with
	// *errs.BusinessRuleViolationError when not enough units are available.
	ReserveStock(ctx context.Context, productID kernel.ProductID, quantity int) error
}
