package queries

import (
	"context"
	"errors"

	"ordering/internal/pkg/errs"
)

type GetOrderDetailsQueryHandler struct {
	orders OrderReader
}

func NewGetOrderDetailsQueryHandler(orders OrderReader) GetOrderDetailsQueryHandler {
	return GetOrderDetailsQueryHandler{orders: orders}
}

// Handle returns nil without an error when the order does not exist.
func (h GetOrderDetailsQueryHandler) Handle(ctx context.Context, query GetOrderDetailsQuery) (*OrderDetails, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	o, err := h.orders.GetByIDWithItems(ctx, query.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil //nolint:nilnil // absence is not an error for this query
	}
	if err != nil {
		return nil, err
	}

	details, err := NewOrderDetails(o)
	if err != nil {
		return nil, err
	}
	return &details, nil
}
