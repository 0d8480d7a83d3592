package commands

import (
	"errors"
	"time"

	"servicedesk/internal/core/domain/model/account"
	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/core/domain/model/order"
	"servicedesk/internal/pkg/errs"
	"servicedesk/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// OrderPatch carries the optional fields of an order update. Nil fields are
// left untouched.
type OrderPatch struct {
	OrganizationID        *int64
	WorkerID              *int64
	State                 *string
	TechnicianNotes       *string
	ScheduledVisitAt      *time.Time
	EstimatedResolutionAt *time.Time
	Rating                *int
	Comment               *string
}

// IsEmpty reports whether the patch carries no field at all.
func (p OrderPatch) IsEmpty() bool {
	return p.OrganizationID == nil &&
		p.WorkerID == nil &&
		p.State == nil &&
		p.TechnicianNotes == nil &&
		p.ScheduledVisitAt == nil &&
		p.EstimatedResolutionAt == nil &&
		p.Rating == nil &&
		p.Comment == nil
}

// UpdateOrderCommand applies a patch to one order. Field values are parsed
// here; who may change what is decided by the order itself.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderTarget

	organizationID *kernel.ID
	workerID       *kernel.ID
	state          *order.Status
	notes          order.WorkNotes
	rating         *order.Rating

	guard guard.ConstructorGuard
}

func NewUpdateOrderCommand(actor account.Actor, orderID kernel.ID, patch OrderPatch) (UpdateOrderCommand, error) {
	target, err := newOrderTarget(actor, orderID)
	if err != nil {
		return UpdateOrderCommand{}, err
	}
	if patch.IsEmpty() {
		return UpdateOrderCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"patch",
			errors.New("no valid fields to update"),
		)
	}

	cmd := UpdateOrderCommand{orderTarget: target}
	if err = errors.Join(
		cmd.setOrganizationID(patch.OrganizationID),
		cmd.setWorkerID(patch.WorkerID),
		cmd.setState(patch.State),
		cmd.setRating(patch.Rating, patch.Comment),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	cmd.notes = order.WorkNotes{
		TechnicianNotes:       patch.TechnicianNotes,
		ScheduledVisitAt:      patch.ScheduledVisitAt,
		EstimatedResolutionAt: patch.EstimatedResolutionAt,
	}
	cmd.guard = guard.NewConstructorGuard()

	return cmd, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) OrganizationID() *kernel.ID {
	return c.organizationID
}

func (c UpdateOrderCommand) WorkerID() *kernel.ID {
	return c.workerID
}

func (c UpdateOrderCommand) State() *order.Status {
	return c.state
}

func (c UpdateOrderCommand) WorkNotes() order.WorkNotes {
	return c.notes
}

func (c UpdateOrderCommand) Rating() *order.Rating {
	return c.rating
}

func (c *UpdateOrderCommand) setOrganizationID(raw *int64) error {
	if raw == nil {
		return nil
	}
	id, err := kernel.NewID(*raw)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("organizationId", err)
	}
	c.organizationID = &id
	return nil
}

func (c *UpdateOrderCommand) setWorkerID(raw *int64) error {
	if raw == nil {
		return nil
	}
	id, err := kernel.NewID(*raw)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("workerId", err)
	}
	c.workerID = &id
	return nil
}

func (c *UpdateOrderCommand) setState(raw *string) error {
	if raw == nil {
		return nil
	}
	status, err := order.ParseStatus(*raw)
	if err != nil {
		return err
	}
	c.state = &status
	return nil
}

func (c *UpdateOrderCommand) setRating(score *int, comment *string) error {
	if score == nil {
		if comment != nil {
			return errs.NewValueIsRequiredErrorWithCause(
				"rating",
				errors.New("a comment needs a rating"),
			)
		}
		return nil
	}

	text := ""
	if comment != nil {
		text = *comment
	}
	rating, err := order.NewRating(*score, text)
	if err != nil {
		return err
	}
	c.rating = &rating
	return nil
}
