package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

type DeliverOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewDeliverOrderCommandHandler(uowFactory OrderUoWFactory) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{uowFactory: uowFactory}
}

func (h DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return updateOrder(ctx, h.uowFactory, cmd.OrderID(), (*order.Order).Deliver)
}
