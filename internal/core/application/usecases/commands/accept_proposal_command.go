package commands

import (
	"errors"

	"servicedesk/internal/core/domain/model/account"
	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/pkg/guard"
)

var ErrAcceptProposalCommandIsNotConstructed = errors.New(
	"AcceptProposalCommand must be created via NewAcceptProposalCommand constructor",
)

// AcceptProposalCommand is the proposed party taking the order.
type AcceptProposalCommand struct {
	orderTarget

	guard guard.ConstructorGuard
}

func NewAcceptProposalCommand(actor account.Actor, orderID kernel.ID) (AcceptProposalCommand, error) {
	target, err := newOrderTarget(actor, orderID)
	if err != nil {
		return AcceptProposalCommand{}, err
	}
	return AcceptProposalCommand{orderTarget: target, guard: guard.NewConstructorGuard()}, nil
}

func (c AcceptProposalCommand) Validate() error {
	return c.guard.Validate(ErrAcceptProposalCommandIsNotConstructed)
}
