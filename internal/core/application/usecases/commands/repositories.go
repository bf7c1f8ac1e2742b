// Package commands contains the use cases that change order state.
// Every handler follows the same pattern: validate the command, begin a unit of work,
// load the aggregate, apply the domain operation, save and commit.
package commands

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for operations on order aggregates.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   repo := uow.OrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)

// updateOrder loads one order inside a fresh unit of work, applies change and commits.
// Nothing is saved when change fails.
func updateOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	orderID kernel.OrderID,
	change func(o *order.Order) error,
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetByIDWithItems(ctx, orderID)
	if err != nil {
		return err
	}

	if err = change(o); err != nil {
		return err
	}

	if err = orderRepo.Save(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
