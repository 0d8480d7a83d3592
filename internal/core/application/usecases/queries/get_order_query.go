package queries

import (
	"errors"

	"servicedesk/internal/core/domain/model/account"
	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery reads one order on behalf of an actor.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	actor   account.Actor
	orderID kernel.ID
	guard   guard.ConstructorGuard
}

func NewGetOrderQuery(actor account.Actor, orderID kernel.ID) (GetOrderQuery, error) {
	q := GetOrderQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		actor.Validate(),
		orderID.Validate(),
	); err != nil {
		return GetOrderQuery{}, err
	}

	q.actor = actor
	q.orderID = orderID
	return q, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) Actor() account.Actor {
	return q.actor
}

func (q GetOrderQuery) OrderID() kernel.ID {
	return q.orderID
}
