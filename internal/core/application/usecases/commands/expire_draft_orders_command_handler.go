package commands

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

// ExpireDraftOrdersCommandHandler cancels stale drafts, each in its own unit of work.
// Orders that changed since they were listed (confirmed, cancelled or saved concurrently)
// are skipped.
type ExpireDraftOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewExpireDraftOrdersCommandHandler(uowFactory OrderUoWFactory) ExpireDraftOrdersCommandHandler {
	return ExpireDraftOrdersCommandHandler{uowFactory: uowFactory}
}

// Handle returns the number of orders it cancelled.
func (h ExpireDraftOrdersCommandHandler) Handle(ctx context.Context, cmd ExpireDraftOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	drafts, err := h.listDrafts(ctx, cmd)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, draft := range drafts {
		err = updateOrder(ctx, h.uowFactory, draft.ID(), func(o *order.Order) error {
			if o.Status() != order.Draft {
				return errs.NewInvalidStateError("expire", o.Status().String())
			}
			return o.Cancel()
		})

		switch {
		case err == nil:
			expired++
		case errors.Is(err, errs.ErrInvalidState),
			errors.Is(err, errs.ErrVersionIsInvalid),
			errors.Is(err, errs.ErrObjectNotFound):
			continue
		default:
			return expired, err
		}
	}

	return expired, nil
}

func (h ExpireDraftOrdersCommandHandler) listDrafts(ctx context.Context, cmd ExpireDraftOrdersCommand) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().GetDraftsCreatedBefore(ctx, cmd.CreatedBefore())
}
