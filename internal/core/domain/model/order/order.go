package order

import (
	"errors"
	"slices"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderHasNoItems is the cause attached when confirming an empty order.
	ErrOrderHasNoItems = errors.New("order has no items")
)

// Order is the aggregate root of the ordering domain. It owns its items, guards the status
// lifecycle and records the domain events that describe each accepted change.
//
// Order follows these invariants:
//   - ID and customer ID are always valid
//   - items can only change while the order is a Draft
//   - an order is never Confirmed without items
//   - each product appears on at most one line
//
// Orders are not safe for concurrent use. Concurrent writers are detected by the
// repository through the version counter.
type Order struct {
	id         kernel.OrderID
	customerID kernel.CustomerID
	orderDate  time.Time
	status     Status
	items      []OrderItem

	// version is the optimistic concurrency token of the last persisted state.
	version int

	events        []kernel.DomainEvent
	isConstructed bool
}

// NewOrder creates a Draft order without items, dated now in UTC, and records OrderCreated.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewOrderID(), customerID)
//	if err != nil {
//	    // invalid identifiers
//	}
func NewOrder(id kernel.OrderID, customerID kernel.CustomerID) (*Order, error) {
	o := &Order{
		orderDate:     time.Now().UTC(),
		status:        Draft,
		items:         []OrderItem{},
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
	); err != nil {
		return nil, err
	}

	o.record(OrderCreated{
		OrderID:    o.id.String(),
		CustomerID: o.customerID.String(),
		Occurred:   o.orderDate,
	})

	return o, nil
}

// RestoreOrder rebuilds an order from persisted state. No events are recorded.
func RestoreOrder(
	id kernel.OrderID,
	customerID kernel.CustomerID,
	orderDate time.Time,
	status Status,
	items []OrderItem,
	version int,
) (*Order, error) {
	o := &Order{
		orderDate:     orderDate.UTC(),
		items:         make([]OrderItem, 0, len(items)),
		isConstructed: true,
	}

	statusErr := status.Validate()
	var versionErr, dateErr error
	if version < 0 {
		versionErr = errs.NewValueIsOutOfRangeError("version", version, 0, "unbounded")
	}
	if orderDate.IsZero() {
		dateErr = errs.NewValueIsRequiredError("orderDate")
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		statusErr,
		versionErr,
		dateErr,
	); err != nil {
		return nil, err
	}

	for _, item := range items {
		if _, duplicate := o.findItem(item.productID); duplicate {
			return nil, errs.NewValueIsInvalidError("items: duplicate product " + item.productID.String())
		}
		o.items = append(o.items, item)
	}

	o.status = status
	o.version = version
	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.OrderID            { return o.id }
func (o *Order) CustomerID() kernel.CustomerID { return o.customerID }
func (o *Order) OrderDate() time.Time          { return o.orderDate }
func (o *Order) Status() Status                { return o.status }
func (o *Order) Version() int                  { return o.version }
func (o *Order) ItemCount() int                { return len(o.items) }

// Items returns a copy of the order lines in insertion order.
func (o *Order) Items() []OrderItem {
	return slices.Clone(o.items)
}

// IncrementVersion is called by repositories once the current state has been stored.
func (o *Order) IncrementVersion() {
	o.version++
}

// DomainEvents returns the events recorded since the last ClearDomainEvents.
func (o *Order) DomainEvents() []kernel.DomainEvent {
	return slices.Clone(o.events)
}

func (o *Order) ClearDomainEvents() {
	o.events = nil
}

// AddItem adds a line to a Draft order. When the product is already on the order the
// quantities are summed and the existing name and unit price are kept.
// On error the order is left unchanged.
func (o *Order) AddItem(productID kernel.ProductID, productName string, unitPrice kernel.Money, quantity int) error {
	if err := o.status.ValidateModifyItems(); err != nil {
		return err
	}

	item, err := NewOrderItem(productID, productName, unitPrice, quantity)
	if err != nil {
		return err
	}

	if idx, found := o.findItem(productID); found {
		merged, err := o.items[idx].withQuantity(o.items[idx].quantity + quantity)
		if err != nil {
			return err
		}
		o.items[idx] = merged
		return nil
	}

	o.items = append(o.items, item)
	return nil
}

// RemoveItem drops the line for productID from a Draft order. Removing an absent product is a no-op.
func (o *Order) RemoveItem(productID kernel.ProductID) error {
	if err := o.status.ValidateModifyItems(); err != nil {
		return err
	}

	if idx, found := o.findItem(productID); found {
		o.items = slices.Delete(o.items, idx, idx+1)
	}
	return nil
}

// Confirm moves a Draft order with at least one item to Confirmed.
func (o *Order) Confirm() error {
	newStatus, err := o.status.Confirm()
	if err != nil {
		return err
	}
	if len(o.items) == 0 {
		return errs.NewInvalidStateErrorWithCause("confirm", o.status.String(), ErrOrderHasNoItems)
	}

	confirmed := OrderConfirmed{
		OrderID:    o.id.String(),
		CustomerID: o.customerID.String(),
		ItemCount:  len(o.items),
		Occurred:   time.Now().UTC(),
	}
	if total, err := o.TotalAmount(); err == nil {
		confirmed.TotalAmount = total.Amount().StringFixed(2)
		confirmed.Currency = total.Currency()
	}

	o.status = newStatus
	o.record(confirmed)
	return nil
}

// Cancel cancels a Draft or Confirmed order. Cancelling a cancelled order succeeds without a new event.
func (o *Order) Cancel() error {
	previous := o.status
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	if previous != Cancelled {
		o.record(OrderCancelled{
			OrderID:        o.id.String(),
			PreviousStatus: previous.String(),
			Occurred:       time.Now().UTC(),
		})
	}
	return nil
}

func (o *Order) Ship() error {
	newStatus, err := o.status.Ship()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.record(OrderShipped{OrderID: o.id.String(), Occurred: time.Now().UTC()})
	return nil
}

func (o *Order) Deliver() error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.record(OrderDelivered{OrderID: o.id.String(), Occurred: time.Now().UTC()})
	return nil
}

// TotalAmount sums the line totals in insertion order. An empty order totals zero in
// kernel.ReferenceCurrency. Lines in different currencies yield a CurrencyMismatchError.
func (o *Order) TotalAmount() (kernel.Money, error) {
	if len(o.items) == 0 {
		return kernel.ZeroMoney(kernel.ReferenceCurrency)
	}

	total, err := kernel.ZeroMoney(o.items[0].unitPrice.Currency())
	if err != nil {
		return kernel.Money{}, err
	}

	for _, item := range o.items {
		lineTotal, err := item.LineTotal()
		if err != nil {
			return kernel.Money{}, err
		}
		if total, err = total.Add(lineTotal); err != nil {
			return kernel.Money{}, err
		}
	}
	return total, nil
}

func (o *Order) findItem(productID kernel.ProductID) (int, bool) {
	idx := slices.IndexFunc(o.items, func(item OrderItem) bool {
		return item.productID.IsEqual(productID)
	})
	return idx, idx >= 0
}

func (o *Order) record(event kernel.DomainEvent) {
	o.events = append(o.events, event)
}

func (o *Order) setID(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.CustomerID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}
	o.customerID = customerID
	return nil
}
