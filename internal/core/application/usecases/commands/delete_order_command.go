package commands

import (
	"errors"

	"servicedesk/internal/core/domain/model/account"
	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/pkg/guard"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand soft-deletes an order.
type DeleteOrderCommand struct {
	orderTarget

	guard guard.ConstructorGuard
}

func NewDeleteOrderCommand(actor account.Actor, orderID kernel.ID) (DeleteOrderCommand, error) {
	target, err := newOrderTarget(actor, orderID)
	if err != nil {
		return DeleteOrderCommand{}, err
	}
	return DeleteOrderCommand{orderTarget: target, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}
