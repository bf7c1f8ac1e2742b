package queries

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrGetOrderDetailsQueryIsNotConstructed = errors.New(
	"GetOrderDetailsQuery must be created via NewGetOrderDetailsQuery constructor",
)

// GetOrderDetailsQuery retrieves a single order with its items and total.
//
// Example:
//
//	query, _ := NewGetOrderDetailsQuery(orderID)
//	details, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load order: %w", err)
//	}
//	if details == nil {
//	    // no such order
//	}
type GetOrderDetailsQuery struct {
	orderID kernel.OrderID

	guard guard.ConstructorGuard
}

func NewGetOrderDetailsQuery(orderID kernel.OrderID) (GetOrderDetailsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderDetailsQuery{}, err
	}
	return GetOrderDetailsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderDetailsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDetailsQueryIsNotConstructed)
}

func (q GetOrderDetailsQuery) OrderID() kernel.OrderID {
	return q.orderID
}
