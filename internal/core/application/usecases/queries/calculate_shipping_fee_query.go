package queries

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrCalculateShippingFeeQueryIsNotConstructed = errors.New(
	"CalculateShippingFeeQuery must be created via NewCalculateShippingFeeQuery constructor",
)

// CalculateShippingFeeQuery quotes the shipping fee of an order for a destination address.
type CalculateShippingFeeQuery struct {
	orderID kernel.OrderID
	address string

	guard guard.ConstructorGuard
}

func NewCalculateShippingFeeQuery(orderID kernel.OrderID, address string) (CalculateShippingFeeQuery, error) {
	var addressErr error
	if strings.TrimSpace(address) == "" {
		addressErr = errs.NewValueIsRequiredError("address")
	}
	if err := errors.Join(orderID.Validate(), addressErr); err != nil {
		return CalculateShippingFeeQuery{}, err
	}

	return CalculateShippingFeeQuery{
		orderID: orderID,
		address: address,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q CalculateShippingFeeQuery) Validate() error {
	return q.guard.Validate(ErrCalculateShippingFeeQueryIsNotConstructed)
}

func (q CalculateShippingFeeQuery) OrderID() kernel.OrderID { return q.orderID }
func (q CalculateShippingFeeQuery) Address() string         { return q.address }
