package commands

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrAddItemToOrderCommandIsNotConstructed = errors.New(
	"AddItemToOrderCommand must be created via NewAddItemToOrderCommand constructor",
)

// AddItemToOrderCommand adds quantity units of a product to a Draft order.
// The unit price is a plain amount; the handler attaches the configured currency.
type AddItemToOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.OrderID
	productID   kernel.ProductID
	productName string
	unitPrice   decimal.Decimal
	quantity    int

	guard guard.ConstructorGuard
}

func NewAddItemToOrderCommand(
	orderID kernel.OrderID,
	productID kernel.ProductID,
	productName string,
	unitPrice decimal.Decimal,
	quantity int,
) (AddItemToOrderCommand, error) {
	cmd := AddItemToOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setProductID(productID),
		cmd.setProductName(productName),
		cmd.setUnitPrice(unitPrice),
		cmd.setQuantity(quantity),
	); err != nil {
		return AddItemToOrderCommand{}, err
	}

	return cmd, nil
}

func (c AddItemToOrderCommand) Validate() error {
	return c.guard.Validate(ErrAddItemToOrderCommandIsNotConstructed)
}

func (c AddItemToOrderCommand) OrderID() kernel.OrderID     { return c.orderID }
func (c AddItemToOrderCommand) ProductID() kernel.ProductID { return c.productID }
func (c AddItemToOrderCommand) ProductName() string         { return c.productName }
func (c AddItemToOrderCommand) UnitPrice() decimal.Decimal  { return c.unitPrice }
func (c AddItemToOrderCommand) Quantity() int               { return c.quantity }

func (c *AddItemToOrderCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddItemToOrderCommand) setProductID(productID kernel.ProductID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *AddItemToOrderCommand) setProductName(productName string) error {
	if strings.TrimSpace(productName) == "" {
		return errs.NewValueIsRequiredError("productName")
	}

	c.productName = productName
	return nil
}

func (c *AddItemToOrderCommand) setUnitPrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return errs.NewValueIsOutOfRangeError("unitPrice", unitPrice, 0, "unbounded")
	}

	c.unitPrice = unitPrice
	return nil
}

func (c *AddItemToOrderCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}

	c.quantity = quantity
	return nil
}
