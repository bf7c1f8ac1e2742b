package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

// StockChecker decides whether the inventory can cover an order.
// It is satisfied by *services.OrderDomainService.
type StockChecker interface {
	CanProcessOrder(ctx context.Context, o *order.Order) (bool, error)
}

// ConfirmOrderCommandHandler confirms a Draft order when every line is in stock.
//
// Example:
//
//	handler := NewConfirmOrderCommandHandler(uowFactory, domainService)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrBusinessRuleViolation):
//	    log.Println("Not enough stock")
//	case errors.Is(err, errs.ErrInvalidState):
//	    log.Println("Order is not a draft or has no items")
//	case err != nil:
//	    log.Printf("Confirmation failed: %v", err)
//	}
type ConfirmOrderCommandHandler struct {
	uowFactory   OrderUoWFactory
	stockChecker StockChecker
}

func NewConfirmOrderCommandHandler(uowFactory OrderUoWFactory, stockChecker StockChecker) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory:   uowFactory,
		stockChecker: stockChecker,
	}
}

func (h ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return updateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		canProcess, err := h.stockChecker.CanProcessOrder(ctx, o)
		if err != nil {
			return err
		}
		if !canProcess {
			return errs.NewBusinessRuleViolationError("insufficient stock")
		}

		return o.Confirm()
	})
}
