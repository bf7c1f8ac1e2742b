package queries

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// ShippingFeeCalculator is satisfied by *services.OrderDomainService.
type ShippingFeeCalculator interface {
	CalculateShippingFee(ctx context.Context, o *order.Order, address string) (kernel.Money, error)
}

type CalculateShippingFeeQueryHandler struct {
	orders     OrderReader
	calculator ShippingFeeCalculator
}

func NewCalculateShippingFeeQueryHandler(orders OrderReader, calculator ShippingFeeCalculator) CalculateShippingFeeQueryHandler {
	return CalculateShippingFeeQueryHandler{orders: orders, calculator: calculator}
}

// Handle fails with *errs.ObjectNotFoundError when the order does not exist.
func (h CalculateShippingFeeQueryHandler) Handle(ctx context.Context, query CalculateShippingFeeQuery) (kernel.Money, error) {
	if err := query.Validate(); err != nil {
		return kernel.Money{}, err
	}

	o, err := h.orders.GetByIDWithItems(ctx, query.OrderID())
	if err != nil {
		return kernel.Money{}, err
	}

	return h.calculator.CalculateShippingFee(ctx, o, query.Address())
}
