package commands

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// AddItemToOrderCommandHandler prices the item in the configured currency and adds it to the order.
type AddItemToOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	currency   string
}

// NewAddItemToOrderCommandHandler falls back to kernel.ReferenceCurrency when currency is empty.
func NewAddItemToOrderCommandHandler(uowFactory OrderUoWFactory, currency string) AddItemToOrderCommandHandler {
	if currency == "" {
		currency = kernel.ReferenceCurrency
	}
	return AddItemToOrderCommandHandler{
		uowFactory: uowFactory,
		currency:   currency,
	}
}

func (h AddItemToOrderCommandHandler) Handle(ctx context.Context, cmd AddItemToOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unitPrice, err := kernel.NewMoney(cmd.UnitPrice(), h.currency)
	if err != nil {
		return err
	}

	return updateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.AddItem(cmd.ProductID(), cmd.ProductName(), unitPrice, cmd.Quantity())
	})
}
