package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrRemoveItemFromOrderCommandIsNotConstructed = errors.New(
	"RemoveItemFromOrderCommand must be created via NewRemoveItemFromOrderCommand constructor",
)

// RemoveItemFromOrderCommand drops a product line from a Draft order.
type RemoveItemFromOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.OrderID
	productID kernel.ProductID

	guard guard.ConstructorGuard
}

func NewRemoveItemFromOrderCommand(orderID kernel.OrderID, productID kernel.ProductID) (RemoveItemFromOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), productID.Validate()); err != nil {
		return RemoveItemFromOrderCommand{}, err
	}

	return RemoveItemFromOrderCommand{
		orderID:   orderID,
		productID: productID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RemoveItemFromOrderCommand) Validate() error {
	return c.guard.Validate(ErrRemoveItemFromOrderCommandIsNotConstructed)
}

func (c RemoveItemFromOrderCommand) OrderID() kernel.OrderID     { return c.orderID }
func (c RemoveItemFromOrderCommand) ProductID() kernel.ProductID { return c.productID }
