package order_test

import (
	"testing"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(amount int64) kernel.Money {
	return kernel.MustNewMoney(decimal.NewFromInt(amount), kernel.ReferenceCurrency)
}

func newDraft(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewOrderID(), kernel.NewCustomerID())
	require.NoError(t, err)
	return o
}

func newOrderWithItem(t *testing.T) *order.Order {
	t.Helper()
	o := newDraft(t)
	require.NoError(t, o.AddItem(kernel.NewProductID(), "Laptop", price(45000), 1))
	return o
}

func eventNames(o *order.Order) []string {
	names := make([]string, 0)
	for _, e := range o.DomainEvents() {
		names = append(names, e.EventName())
	}
	return names
}

func TestNewOrder(t *testing.T) {
	t.Run("should create draft order", func(t *testing.T) {
		id := kernel.NewOrderID()
		customerID := kernel.NewCustomerID()
		before := time.Now().UTC()

		o, err := order.NewOrder(id, customerID)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.CustomerID().IsEqual(customerID))
		assert.Equal(t, order.Draft, o.Status())
		assert.Equal(t, 0, o.ItemCount())
		assert.Empty(t, o.Items())
		assert.Equal(t, 0, o.Version())
		assert.Equal(t, time.UTC, o.OrderDate().Location())
		assert.False(t, o.OrderDate().Before(before))
	})

	t.Run("should record OrderCreated", func(t *testing.T) {
		o := newDraft(t)

		events := o.DomainEvents()

		require.Len(t, events, 1)
		created, ok := events[0].(order.OrderCreated)
		require.True(t, ok)
		assert.Equal(t, o.ID().String(), created.AggregateID())
		assert.Equal(t, o.CustomerID().String(), created.CustomerID)
	})

	t.Run("should fail with invalid identifiers", func(t *testing.T) {
		o, err := order.NewOrder(kernel.OrderID{}, kernel.CustomerID{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "orderID")
		assert.Contains(t, err.Error(), "customerID")
	})

	t.Run("zero value order is not constructed", func(t *testing.T) {
		var o *order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
		require.ErrorIs(t, (&order.Order{}).Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestRestoreOrder(t *testing.T) {
	id := kernel.NewOrderID()
	customerID := kernel.NewCustomerID()
	orderDate := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	item, err := order.NewOrderItem(kernel.NewProductID(), "Mouse", price(2500), 2)
	require.NoError(t, err)

	t.Run("should restore without recording events", func(t *testing.T) {
		o, err := order.RestoreOrder(id, customerID, orderDate, order.Confirmed, []order.OrderItem{item}, 3)

		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, o.Status())
		assert.Equal(t, 3, o.Version())
		assert.Equal(t, orderDate, o.OrderDate())
		assert.Equal(t, []order.OrderItem{item}, o.Items())
		assert.Empty(t, o.DomainEvents())
	})

	t.Run("should reject invalid state", func(t *testing.T) {
		_, err := order.RestoreOrder(id, customerID, time.Time{}, order.Unknown, nil, -1)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject duplicate products", func(t *testing.T) {
		_, err := order.RestoreOrder(id, customerID, orderDate, order.Draft, []order.OrderItem{item, item}, 0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_AddItem(t *testing.T) {
	t.Run("should append new products in insertion order", func(t *testing.T) {
		o := newDraft(t)
		p1, p2 := kernel.NewProductID(), kernel.NewProductID()

		require.NoError(t, o.AddItem(p1, "Laptop", price(45000), 1))
		require.NoError(t, o.AddItem(p2, "Mouse", price(2500), 2))

		items := o.Items()
		require.Len(t, items, 2)
		assert.True(t, items[0].ProductID().IsEqual(p1))
		assert.True(t, items[1].ProductID().IsEqual(p2))
		assert.Equal(t, 2, items[1].Quantity())
	})

	t.Run("should merge repeated products keeping first name and price", func(t *testing.T) {
		o := newDraft(t)
		p := kernel.NewProductID()

		require.NoError(t, o.AddItem(p, "Mouse", price(2500), 2))
		require.NoError(t, o.AddItem(p, "Mouse v2", price(3000), 3))

		items := o.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 5, items[0].Quantity())
		assert.Equal(t, "Mouse", items[0].ProductName())
		assert.True(t, items[0].UnitPrice().IsEqual(price(2500)))
	})

	t.Run("should reject non-positive quantity without changing the order", func(t *testing.T) {
		o := newOrderWithItem(t)
		before := o.Items()

		for _, quantity := range []int{0, -3} {
			err := o.AddItem(kernel.NewProductID(), "Keyboard", price(1200), quantity)

			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		}
		err := o.AddItem(before[0].ProductID(), "Laptop", price(45000), 0)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		assert.Equal(t, before, o.Items())
	})

	t.Run("should reject blank name and invalid price", func(t *testing.T) {
		o := newDraft(t)

		err := o.AddItem(kernel.NewProductID(), "  ", kernel.Money{}, 1)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "productName")
		assert.Contains(t, err.Error(), "unitPrice")
		assert.Equal(t, 0, o.ItemCount())
	})

	t.Run("should reject changes outside Draft", func(t *testing.T) {
		o := newOrderWithItem(t)
		require.NoError(t, o.Cancel())

		err := o.AddItem(kernel.NewProductID(), "Keyboard", price(1200), 1)

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, 1, o.ItemCount())
	})

	t.Run("returned items are copies", func(t *testing.T) {
		o := newOrderWithItem(t)

		items := o.Items()
		items[0] = order.OrderItem{}

		assert.Equal(t, "Laptop", o.Items()[0].ProductName())
	})
}

func TestOrder_RemoveItem(t *testing.T) {
	t.Run("should remove existing line", func(t *testing.T) {
		o := newDraft(t)
		p1, p2 := kernel.NewProductID(), kernel.NewProductID()
		require.NoError(t, o.AddItem(p1, "Laptop", price(45000), 1))
		require.NoError(t, o.AddItem(p2, "Mouse", price(2500), 2))

		require.NoError(t, o.RemoveItem(p1))

		items := o.Items()
		require.Len(t, items, 1)
		assert.True(t, items[0].ProductID().IsEqual(p2))
	})

	t.Run("should ignore absent product", func(t *testing.T) {
		o := newOrderWithItem(t)

		require.NoError(t, o.RemoveItem(kernel.NewProductID()))
		assert.Equal(t, 1, o.ItemCount())
	})

	t.Run("should reject changes outside Draft", func(t *testing.T) {
		o := newOrderWithItem(t)
		require.NoError(t, o.Confirm())

		err := o.RemoveItem(o.Items()[0].ProductID())

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, 1, o.ItemCount())
	})
}

func TestOrder_Confirm(t *testing.T) {
	t.Run("should confirm draft with items", func(t *testing.T) {
		o := newOrderWithItem(t)

		require.NoError(t, o.Confirm())

		assert.Equal(t, order.Confirmed, o.Status())
		assert.Equal(t, []string{order.EventOrderCreated, order.EventOrderConfirmed}, eventNames(o))
		confirmed, ok := o.DomainEvents()[1].(order.OrderConfirmed)
		require.True(t, ok)
		assert.Equal(t, "45000.00", confirmed.TotalAmount)
		assert.Equal(t, "TWD", confirmed.Currency)
		assert.Equal(t, 1, confirmed.ItemCount)
	})

	t.Run("should never confirm an empty order", func(t *testing.T) {
		o := newDraft(t)

		err := o.Confirm()

		require.ErrorIs(t, err, errs.ErrInvalidState)
		var stateErr *errs.InvalidStateError
		require.ErrorAs(t, err, &stateErr)
		assert.Equal(t, order.ErrOrderHasNoItems, stateErr.Cause)
		assert.Equal(t, order.Draft, o.Status())
	})

	t.Run("should confirm mixed currency draft without a total", func(t *testing.T) {
		o := newOrderWithItem(t)
		usd := kernel.MustNewMoney(decimal.NewFromInt(10), "USD")
		require.NoError(t, o.AddItem(kernel.NewProductID(), "Cable", usd, 1))

		require.NoError(t, o.Confirm())

		assert.Equal(t, order.Confirmed, o.Status())
		confirmed, ok := o.DomainEvents()[1].(order.OrderConfirmed)
		require.True(t, ok)
		assert.Empty(t, confirmed.TotalAmount)
		assert.Empty(t, confirmed.Currency)
		assert.Equal(t, 2, confirmed.ItemCount)
	})

	t.Run("should not confirm twice", func(t *testing.T) {
		o := newOrderWithItem(t)
		require.NoError(t, o.Confirm())

		require.ErrorIs(t, o.Confirm(), errs.ErrInvalidState)
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("should cancel draft and confirmed orders", func(t *testing.T) {
		draft := newOrderWithItem(t)
		confirmed := newOrderWithItem(t)
		require.NoError(t, confirmed.Confirm())

		require.NoError(t, draft.Cancel())
		require.NoError(t, confirmed.Cancel())

		assert.Equal(t, order.Cancelled, draft.Status())
		assert.Equal(t, order.Cancelled, confirmed.Status())
		cancelled, ok := confirmed.DomainEvents()[2].(order.OrderCancelled)
		require.True(t, ok)
		assert.Equal(t, "Confirmed", cancelled.PreviousStatus)
	})

	t.Run("cancelling twice is accepted once recorded", func(t *testing.T) {
		o := newDraft(t)
		require.NoError(t, o.Cancel())

		require.NoError(t, o.Cancel())

		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, []string{order.EventOrderCreated, order.EventOrderCancelled}, eventNames(o))
	})

	t.Run("should fail once shipped and keep the status", func(t *testing.T) {
		o := newOrderWithItem(t)
		require.NoError(t, o.Confirm())
		require.NoError(t, o.Ship())

		err := o.Cancel()

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, order.Shipped, o.Status())

		require.NoError(t, o.Deliver())
		require.ErrorIs(t, o.Cancel(), errs.ErrInvalidState)
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("cancelled order rejects further progress", func(t *testing.T) {
		o := newOrderWithItem(t)
		require.NoError(t, o.Cancel())

		require.ErrorIs(t, o.Confirm(), errs.ErrInvalidState)
		require.ErrorIs(t, o.Ship(), errs.ErrInvalidState)
		require.ErrorIs(t, o.Deliver(), errs.ErrInvalidState)
		assert.Equal(t, order.Cancelled, o.Status())
	})
}

func TestOrder_ShipAndDeliver(t *testing.T) {
	o := newOrderWithItem(t)

	require.ErrorIs(t, o.Ship(), errs.ErrInvalidState)
	require.ErrorIs(t, o.Deliver(), errs.ErrInvalidState)

	require.NoError(t, o.Confirm())
	require.ErrorIs(t, o.Deliver(), errs.ErrInvalidState)
	require.NoError(t, o.Ship())
	require.NoError(t, o.Deliver())

	assert.Equal(t, order.Delivered, o.Status())
	assert.Equal(t, []string{
		order.EventOrderCreated,
		order.EventOrderConfirmed,
		order.EventOrderShipped,
		order.EventOrderDelivered,
	}, eventNames(o))
}

func TestOrder_TotalAmount(t *testing.T) {
	t.Run("empty order totals zero TWD", func(t *testing.T) {
		total, err := newDraft(t).TotalAmount()

		require.NoError(t, err)
		assert.True(t, total.IsZero())
		assert.Equal(t, "TWD", total.Currency())
	})

	t.Run("should sum line totals", func(t *testing.T) {
		o := newDraft(t)
		require.NoError(t, o.AddItem(kernel.NewProductID(), "Laptop", price(45000), 1))
		require.NoError(t, o.AddItem(kernel.NewProductID(), "Mouse", price(2500), 2))

		total, err := o.TotalAmount()

		require.NoError(t, err)
		assert.Equal(t, "50000.00 TWD", total.String())
	})

	t.Run("should fail for mixed currencies", func(t *testing.T) {
		o := newOrderWithItem(t)
		usd := kernel.MustNewMoney(decimal.NewFromInt(10), "USD")
		require.NoError(t, o.AddItem(kernel.NewProductID(), "Cable", usd, 1))

		_, err := o.TotalAmount()

		require.ErrorIs(t, err, errs.ErrCurrencyMismatch)
	})
}

func TestOrder_EventsAndVersion(t *testing.T) {
	o := newOrderWithItem(t)

	o.IncrementVersion()
	o.IncrementVersion()
	o.ClearDomainEvents()

	assert.Equal(t, 2, o.Version())
	assert.Empty(t, o.DomainEvents())
}
