package commands

import (
	"context"

	"servicedesk/internal/core/ports"
)

type DeleteOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

func NewDeleteOrderCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
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

	if err = o.SoftDelete(cmd.Actor()); err != nil {
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
