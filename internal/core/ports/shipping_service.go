package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
)

// ShippingService quotes a delivery fee for an order total and destination address.
type ShippingService interface {
	CalculateFee(ctx context.Context, address string, orderTotal kernel.Money) (kernel.Money, error)
}
