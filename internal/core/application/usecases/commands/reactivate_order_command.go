package commands

import (
	"errors"

	"servicedesk/internal/core/domain/model/account"
	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/pkg/guard"
)

var ErrReactivateOrderCommandIsNotConstructed = errors.New(
	"ReactivateOrderCommand must be created via NewReactivateOrderCommand constructor",
)

// ReactivateOrderCommand brings a soft-deleted order back to searching.
type ReactivateOrderCommand struct {
	orderTarget

	guard guard.ConstructorGuard
}

func NewReactivateOrderCommand(actor account.Actor, orderID kernel.ID) (ReactivateOrderCommand, error) {
	target, err := newOrderTarget(actor, orderID)
	if err != nil {
		return ReactivateOrderCommand{}, err
	}
	return ReactivateOrderCommand{orderTarget: target, guard: guard.NewConstructorGuard()}, nil
}

func (c ReactivateOrderCommand) Validate() error {
	return c.guard.Validate(ErrReactivateOrderCommandIsNotConstructed)
}
