package services

import (
	"context"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// DefaultFreeShippingThreshold is the order total from which shipping is free.
var DefaultFreeShippingThreshold = decimal.NewFromInt(1000)

// OrderDomainService combines the Order aggregate with the inventory and shipping collaborators.
// It never modifies the orders it is given.
//
// Example usage:
//
//	svc, _ := services.NewOrderDomainService(inventory, shipping, services.DefaultFreeShippingThreshold)
//	ok, err := svc.CanProcessOrder(ctx, o)
//	if err != nil {
//	    return err
//	}
//	if !ok {
//	    // at least one line exceeds the available stock
//	}
type OrderDomainService struct {
	inventory             ports.InventoryService
	shipping              ports.ShippingService
	freeShippingThreshold decimal.Decimal
}

func NewOrderDomainService(
	inventory ports.InventoryService,
	shipping ports.ShippingService,
	freeShippingThreshold decimal.Decimal,
) (*OrderDomainService, error) {
	if inventory == nil {
		return nil, errs.NewValueIsRequiredError("inventory")
	}
	if shipping == nil {
		return nil, errs.NewValueIsRequiredError("shipping")
	}
	if freeShippingThreshold.IsNegative() {
		return nil, errs.NewValueIsOutOfRangeError("freeShippingThreshold", freeShippingThreshold, 0, "unbounded")
	}

	return &OrderDomainService{
		inventory:             inventory,
		shipping:              shipping,
		freeShippingThreshold: freeShippingThreshold,
	}, nil
}

// CanProcessOrder reports whether every line is covered by the available stock.
// Lines are checked in order and the check stops at the first shortage.
func (s *OrderDomainService) CanProcessOrder(ctx context.Context, o *order.Order) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}

	for _, item := range o.Items() {
		available, err := s.inventory.GetAvailableStock(ctx, item.ProductID())
		if err != nil {
			return false, err
		}
		if item.Quantity() > available {
			return false, nil
		}
	}
	return true, nil
}

// CalculateShippingFee returns zero in the order currency when the order total reaches the
// free shipping threshold and the shipping collaborator's quote otherwise.
func (s *OrderDomainService) CalculateShippingFee(ctx context.Context, o *order.Order, address string) (kernel.Money, error) {
	if err := o.Validate(); err != nil {
		return kernel.Money{}, err
	}
	if strings.TrimSpace(address) == "" {
		return kernel.Money{}, errs.NewValueIsRequiredError("address")
	}

	total, err := o.TotalAmount()
	if err != nil {
		return kernel.Money{}, err
	}

	if total.Amount().GreaterThanOrEqual(s.freeShippingThreshold) {
		return kernel.ZeroMoney(total.Currency())
	}
	return s.shipping.CalculateFee(ctx, address, total)
}
