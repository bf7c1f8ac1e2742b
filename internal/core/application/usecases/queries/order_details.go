// Package queries contains read operations for retrieving order state.
// Queries return plain read models built from the order aggregate.
package queries

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderReader is the read side of ports.OrderRepository used by query handlers.
type OrderReader interface {
	GetByIDWithItems(ctx context.Context, id kernel.OrderID) (*order.Order, error)
	GetOrdersByCustomer(ctx context.Context, customerID kernel.CustomerID) ([]*order.Order, error)
}

// OrderDetails is the transfer representation of an order.
type OrderDetails struct {
	ID          string
	CustomerID  string
	OrderDate   time.Time
	Status      string
	TotalAmount decimal.Decimal
	Currency    string
	Version     int
	Items       []OrderItemDetails
}

type OrderItemDetails struct {
	ProductID   string
	ProductName string
	UnitPrice   decimal.Decimal
	Currency    string
	Quantity    int
	LineTotal   decimal.Decimal
}

// NewOrderDetails maps an order and its computed totals to the transfer representation.
func NewOrderDetails(o *order.Order) (OrderDetails, error) {
	if err := o.Validate(); err != nil {
		return OrderDetails{}, err
	}

	total, err := o.TotalAmount()
	if err != nil {
		return OrderDetails{}, err
	}

	items := make([]OrderItemDetails, 0, o.ItemCount())
	for _, item := range o.Items() {
		lineTotal, err := item.LineTotal()
		if err != nil {
			return OrderDetails{}, err
		}
		items = append(items, OrderItemDetails{
			ProductID:   item.ProductID().String(),
			ProductName: item.ProductName(),
			UnitPrice:   item.UnitPrice().Amount(),
			Currency:    item.UnitPrice().Currency(),
			Quantity:    item.Quantity(),
			LineTotal:   lineTotal.Amount(),
		})
	}

	return OrderDetails{
		ID:          o.ID().String(),
		CustomerID:  o.CustomerID().String(),
		OrderDate:   o.OrderDate(),
		Status:      o.Status().String(),
		TotalAmount: total.Amount(),
		Currency:    total.Currency(),
		Version:     o.Version(),
		Items:       items,
	}, nil
}
