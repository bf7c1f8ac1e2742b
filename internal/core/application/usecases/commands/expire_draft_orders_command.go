package commands

import (
	"errors"
	"time"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrExpireDraftOrdersCommandIsNotConstructed = errors.New(
	"ExpireDraftOrdersCommand must be created via NewExpireDraftOrdersCommand constructor",
)

// ExpireDraftOrdersCommand cancels Draft orders created before a cutoff.
type ExpireDraftOrdersCommand struct { //nolint:recvcheck //using for validation
	createdBefore time.Time

	guard guard.ConstructorGuard
}

func NewExpireDraftOrdersCommand(createdBefore time.Time) (ExpireDraftOrdersCommand, error) {
	if createdBefore.IsZero() {
		return ExpireDraftOrdersCommand{}, errs.NewValueIsRequiredError("createdBefore")
	}

	return ExpireDraftOrdersCommand{
		createdBefore: createdBefore.UTC(),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c ExpireDraftOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpireDraftOrdersCommandIsNotConstructed)
}

func (c ExpireDraftOrdersCommand) CreatedBefore() time.Time {
	return c.createdBefore
}
