package queries

import (
	"context"
)

type GetCustomerOrdersQueryHandler struct {
	orders OrderReader
}

func NewGetCustomerOrdersQueryHandler(orders OrderReader) GetCustomerOrdersQueryHandler {
	return GetCustomerOrdersQueryHandler{orders: orders}
}

func (h GetCustomerOrdersQueryHandler) Handle(ctx context.Context, query GetCustomerOrdersQuery) ([]OrderDetails, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.orders.GetOrdersByCustomer(ctx, query.CustomerID())
	if err != nil {
		return nil, err
	}

	result := make([]OrderDetails, 0, len(orders))
	for _, o := range orders {
		details, err := NewOrderDetails(o)
		if err != nil {
			return nil, err
		}
		result = append(result, details)
	}
	return result, nil
}
