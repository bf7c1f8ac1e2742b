package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrShipOrderCommandIsNotConstructed = errors.New(
	"ShipOrderCommand must be created via NewShipOrderCommand constructor",
)

// ShipOrderCommand marks a Confirmed order as handed to the carrier.
type ShipOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.OrderID

	guard guard.ConstructorGuard
}

func NewShipOrderCommand(orderID kernel.OrderID) (ShipOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ShipOrderCommand{}, err
	}

	return ShipOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ShipOrderCommand) Validate() error {
	return c.guard.Validate(ErrShipOrderCommandIsNotConstructed)
}

func (c ShipOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}
