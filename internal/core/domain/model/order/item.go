package order

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// OrderItem is a single order line. It is owned by an Order and handed out only as a copy,
// so its quantity changes exclusively through the owning aggregate.
type OrderItem struct {
	productID   kernel.ProductID
	productName string
	unitPrice   kernel.Money
	quantity    int
}

// NewOrderItem validates all fields at once and returns the joined errors.
func NewOrderItem(productID kernel.ProductID, productName string, unitPrice kernel.Money, quantity int) (OrderItem, error) {
	item := OrderItem{}

	if err := errors.Join(
		item.setProductID(productID),
		item.setProductName(productName),
		item.setUnitPrice(unitPrice),
		item.setQuantity(quantity),
	); err != nil {
		return OrderItem{}, err
	}

	return item, nil
}

func (i OrderItem) ProductID() kernel.ProductID { return i.productID }
func (i OrderItem) ProductName() string         { return i.productName }
func (i OrderItem) UnitPrice() kernel.Money     { return i.unitPrice }
func (i OrderItem) Quantity() int               { return i.quantity }

// LineTotal is unit price times quantity, in the unit price currency.
func (i OrderItem) LineTotal() (kernel.Money, error) {
	return i.unitPrice.Multiply(i.quantity)
}

func (i OrderItem) withQuantity(quantity int) (OrderItem, error) {
	if err := i.setQuantity(quantity); err != nil {
		return OrderItem{}, err
	}
	return i, nil
}

func (i *OrderItem) setProductID(productID kernel.ProductID) error {
	if err := productID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productID", err)
	}
	i.productID = productID
	return nil
}

func (i *OrderItem) setProductName(productName string) error {
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	i.productName = productName
	return nil
}

func (i *OrderItem) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("unitPrice", err)
	}
	i.unitPrice = unitPrice
	return nil
}

func (i *OrderItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	i.quantity = quantity
	return nil
}
