package memory

import (
	"context"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var _ ports.ShippingService = (*ShippingService)(nil)

// ShippingService is a mock carrier quoting a flat fee, waived from freeFrom upwards.
// Fees are quoted in the order total's currency.
type ShippingService struct {
	flatFee  decimal.Decimal
	freeFrom decimal.Decimal
}

// NewShippingService returns the default mock: 100 per order, free from 1000.
func NewShippingService() *ShippingService {
	return &ShippingService{
		flatFee:  decimal.NewFromInt(100),
		freeFrom: decimal.NewFromInt(1000),
	}
}

func (s *ShippingService) CalculateFee(_ context.Context, address string, orderTotal kernel.Money) (kernel.Money, error) {
	if strings.TrimSpace(address) == "" {
		return kernel.Money{}, errs.NewValueIsRequiredError("address")
	}
	if err := orderTotal.Validate(); err != nil {
		return kernel.Money{}, err
	}

	if orderTotal.Amount().GreaterThanOrEqual(s.freeFrom) {
		return kernel.ZeroMoney(orderTotal.Currency())
	}
	return kernel.NewMoney(s.flatFee, orderTotal.Currency())
}
