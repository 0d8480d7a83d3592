package commands

import (
	"errors"
	"fmt"

	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/core/domain/model/order"
	"servicedesk/internal/core/domain/services"
	"servicedesk/internal/pkg/errs"
	"servicedesk/internal/pkg/guard"
)

var ErrProposeOrderCommandIsNotConstructed = errors.New(
	"ProposeOrderCommand must be created via NewProposeOrderCommand constructor",
)

// ProposalTrigger records why a proposal is attempted.
type ProposalTrigger int

const (
	TriggerCreation ProposalTrigger = iota + 1
	TriggerRejection
	TriggerReactivation
	TriggerRetry
)

func (t ProposalTrigger) String() string {
	switch t {
	case TriggerCreation:
		return "creation"
	case TriggerRejection:
		return "rejection"
	case TriggerReactivation:
		return "reactivation"
	case TriggerRetry:
		return "retry"
	}
	return "unknown"
}

// ProposeOrderCommand asks for a searching order to be proposed to its first
// eligible candidate.
type ProposeOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID
	trigger ProposalTrigger

	guard guard.ConstructorGuard
}

func NewProposeOrderCommand(orderID kernel.ID, trigger ProposalTrigger) (ProposeOrderCommand, error) {
	cmd := ProposeOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(cmd.setOrderID(orderID), cmd.setTrigger(trigger)); err != nil {
		return ProposeOrderCommand{}, err
	}

	return cmd, nil
}

func (c ProposeOrderCommand) Validate() error {
	return c.guard.Validate(ErrProposeOrderCommandIsNotConstructed)
}

func (c ProposeOrderCommand) OrderID() kernel.ID {
	return c.orderID
}

func (c ProposeOrderCommand) Trigger() ProposalTrigger {
	return c.trigger
}

func (c *ProposeOrderCommand) setOrderID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *ProposeOrderCommand) setTrigger(trigger ProposalTrigger) error {
	if trigger < TriggerCreation || trigger > TriggerRetry {
		return errs.NewValueIsInvalidErrorWithCause("trigger", fmt.Errorf("%d is not a proposal trigger", trigger))
	}
	c.trigger = trigger
	return nil
}

// IsBenignProposalError reports whether err only means there was nothing to
// propose: the order is no longer searching or nobody is eligible yet.
func IsBenignProposalError(err error) bool {
	return errors.Is(err, order.ErrOrderNotSearching) || errors.Is(err, services.ErrNoCandidatesFound)
}
