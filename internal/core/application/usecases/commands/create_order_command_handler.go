package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// CreateOrderCommandHandler persists a new Draft order.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the order and commits it. OrderCreated is published on commit.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := order.NewOrder(cmd.OrderID(), cmd.CustomerID())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Save(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
