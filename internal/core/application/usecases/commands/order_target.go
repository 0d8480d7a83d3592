package commands

import (
	"errors"

	"servicedesk/internal/core/domain/model/account"
	"servicedesk/internal/core/domain/model/kernel"
)

// orderTarget is the actor and order shared by commands that act on one
// existing order.
type orderTarget struct {
	actor   account.Actor
	orderID kernel.ID
}

func newOrderTarget(actor account.Actor, orderID kernel.ID) (orderTarget, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return orderTarget{}, err
	}
	return orderTarget{actor: actor, orderID: orderID}, nil
}

func (t orderTarget) Actor() account.Actor {
	return t.actor
}

func (t orderTarget) OrderID() kernel.ID {
	return t.orderID
}
