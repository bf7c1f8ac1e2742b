package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

type ShipOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewShipOrderCommandHandler(uowFactory OrderUoWFactory) ShipOrderCommandHandler {
	return ShipOrderCommandHandler{uowFactory: uowFactory}
}

func (h ShipOrderCommandHandler) Handle(ctx context.Context, cmd ShipOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return updateOrder(ctx, h.uowFactory, cmd.OrderID(), (*order.Order).Ship)
}
