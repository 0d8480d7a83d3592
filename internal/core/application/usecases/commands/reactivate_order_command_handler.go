package commands

import (
	"context"

	"servicedesk/internal/core/ports"
)

// ReactivateOrderCommandHandler restores an order and queues a proposal
// attempt for it after commit.
type ReactivateOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	scheduler  ProposalScheduler
}

func NewReactivateOrderCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	scheduler ProposalScheduler,
) ReactivateOrderCommandHandler {
	return ReactivateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		scheduler:  scheduler,
	}
}

func (h ReactivateOrderCommandHandler) Handle(ctx context.Context, cmd ReactivateOrderCommand) error {
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

	if err = o.Reactivate(cmd.Actor()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	announce(ctx, h.notifier, uow.PullEvents())
	h.scheduler.Schedule(cmd.OrderID(), TriggerReactivation)
	return nil
}
