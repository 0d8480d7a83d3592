package commands

import (
	"context"

	"servicedesk/internal/core/domain/model/account"
	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/core/domain/model/order"
	"servicedesk/internal/core/ports"
)

// UpdateOrderCommandHandler applies a patch inside one transaction. Fields
// are applied in a fixed order: organization, worker, work notes, state,
// rating. The first rejected field aborts the whole patch.
type UpdateOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

func NewUpdateOrderCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.apply(ctx, uow, o, cmd); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	announce(ctx, h.notifier, uow.PullEvents())
	return nil
}

func (h UpdateOrderCommandHandler) apply(ctx context.Context, uow UoW, o *order.Order, cmd UpdateOrderCommand) error {
	actor := cmd.Actor()

	if id := cmd.OrganizationID(); id != nil {
		org, err := loadAccountAs(ctx, uow, actor, account.RolePlatformAdmin, *id)
		if err != nil {
			return err
		}
		if err = o.AssignOrganization(actor, org); err != nil {
			return err
		}
	}

	if id := cmd.WorkerID(); id != nil {
		worker, err := loadAccountAs(ctx, uow, actor, account.RoleOrganizationAdmin, *id)
		if err != nil {
			return err
		}
		if err = o.AssignWorker(actor, worker); err != nil {
			return err
		}
	}

	if notes := cmd.WorkNotes(); !notes.IsEmpty() {
		if err := o.UpdateWorkNotes(actor, notes); err != nil {
			return err
		}
	}

	if state := cmd.State(); state != nil {
		var err error
		if actor.Role() == account.RoleClient && *state == order.CancelledByClient {
			err = o.Cancel(actor)
		} else {
			err = o.SetStatus(actor, *state)
		}
		if err != nil {
			return err
		}
	}

	if rating := cmd.Rating(); rating != nil {
		if err := o.Rate(actor, *rating); err != nil {
			return err
		}
	}

	return nil
}

// loadAccountAs fetches the referenced account only when the actor holds the
// role allowed to reference it. For any other actor it returns nil so the
// order reports the permission failure rather than a missing account.
func loadAccountAs(
	ctx context.Context,
	uow UoW,
	actor account.Actor,
	role account.Role,
	id kernel.ID,
) (*account.Account, error) {
	if actor.Role() != role {
		return nil, nil
	}
	return uow.AccountRepository().Get(ctx, id)
}
