package commands

import (
	"errors"

	"servicedesk/internal/core/domain/model/account"
	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/core/domain/model/order"
	"servicedesk/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a client's request for service work.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(actor, "No hot water", order.Address{City: "Córdoba"}, "north", nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	id, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor   account.Actor
	details order.Details

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request details. zone is normalized;
// location is optional.
func NewCreateOrderCommand(
	actor account.Actor,
	description string,
	address order.Address,
	zone string,
	location *kernel.GeoPoint,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{guard: guard.NewConstructorGuard()}

	z, zoneErr := kernel.NewZone(zone)
	if err := errors.Join(
		cmd.setActor(actor),
		zoneErr,
	); err != nil {
		return CreateOrderCommand{}, err
	}

	details, err := order.NewDetails(description, address, location, z)
	if err != nil {
		return CreateOrderCommand{}, err
	}
	cmd.details = details

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() account.Actor {
	return c.actor
}

func (c CreateOrderCommand) Details() order.Details {
	return c.details
}

func (c *CreateOrderCommand) setActor(actor account.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
