package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

type RemoveItemFromOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRemoveItemFromOrderCommandHandler(uowFactory OrderUoWFactory) RemoveItemFromOrderCommandHandler {
	return RemoveItemFromOrderCommandHandler{uowFactory: uowFactory}
}

// Handle removes the line. Removing a product that is not on the order still commits.
func (h RemoveItemFromOrderCommandHandler) Handle(ctx context.Context, cmd RemoveItemFromOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return updateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.RemoveItem(cmd.ProductID())
	})
}
