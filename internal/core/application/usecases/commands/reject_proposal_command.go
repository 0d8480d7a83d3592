package commands

import (
	"errors"

	"servicedesk/internal/core/domain/model/account"
	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/pkg/guard"
)

var ErrRejectProposalCommandIsNotConstructed = errors.New(
	"RejectProposalCommand must be created via NewRejectProposalCommand constructor",
)

// RejectProposalCommand is the proposed party declining the order.
type RejectProposalCommand struct {
	orderTarget

	guard guard.ConstructorGuard
}

func NewRejectProposalCommand(actor account.Actor, orderID kernel.ID) (RejectProposalCommand, error) {
	target, err := newOrderTarget(actor, orderID)
	if err != nil {
		return RejectProposalCommand{}, err
	}
	return RejectProposalCommand{orderTarget: target, guard: guard.NewConstructorGuard()}, nil
}

func (c RejectProposalCommand) Validate() error {
	return c.guard.Validate(ErrRejectProposalCommandIsNotConstructed)
}
