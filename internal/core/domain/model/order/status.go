package order

import (
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Draft ──> Confirmed ──> Shipped ──> Delivered
//	  │           │
//	  └───────────┴──> Cancelled
//
// Cancelling an already cancelled order is accepted and leaves it cancelled.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Draft is the initial status. Items can only be changed while the order is a draft.
	Draft

	// Confirmed orders passed the stock check and wait for shipment.
	Confirmed

	// Shipped orders can no longer be cancelled.
	Shipped

	// Delivered is a final state.
	Delivered

	// Cancelled is a final state.
	Cancelled
)

var statusNames = map[Status]string{
	Unknown:   "Unknown",
	Draft:     "Draft",
	Confirmed: "Confirmed",
	Shipped:   "Shipped",
	Delivered: "Delivered",
	Cancelled: "Cancelled",
}

// ParseStatus maps a status name back to its value, ignoring case.
// Unknown names and "Unknown" itself are rejected.
func ParseStatus(name string) (Status, error) {
	for status, statusName := range statusNames {
		if status != Unknown && strings.EqualFold(statusName, strings.TrimSpace(name)) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", name))
}

// Validate rejects Unknown and any value outside the defined set.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the status name, or "Unknown" for undefined values.
func (s Status) String() string {
	if str, ok := statusNames[s]; ok {
		return str
	}
	return "Unknown"
}

// IsFinal reports whether no further transition is possible.
func (s Status) IsFinal() bool {
	return s == Delivered || s == Cancelled
}

// ValidateModifyItems checks that the item list can still change.
func (s Status) ValidateModifyItems() error {
	if s != Draft {
		return errs.NewInvalidStateError("modify items", s.String())
	}
	return nil
}

// Confirm transitions Draft -> Confirmed.
func (s Status) Confirm() (Status, error) {
	if s != Draft {
		return Unknown, errs.NewInvalidStateError("confirm", s.String())
	}
	return Confirmed, nil
}

// Cancel transitions Draft, Confirmed or Cancelled -> Cancelled.
func (s Status) Cancel() (Status, error) {
	switch s {
	case Draft, Confirmed, Cancelled:
		return Cancelled, nil
	default:
		return Unknown, errs.NewInvalidStateError("cancel", s.String())
	}
}

// Ship transitions Confirmed -> Shipped.
func (s Status) Ship() (Status, error) {
	if s != Confirmed {
		return Unknown, errs.NewInvalidStateError("ship", s.String())
	}
	return Shipped, nil
}

// Deliver transitions Shipped -> Delivered.
func (s Status) Deliver() (Status, error) {
	if s != Shipped {
		return Unknown, errs.NewInvalidStateError("deliver", s.String())
	}
	return Delivered, nil
}
