package commands

import (
	"context"
	"log/slog"

	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/core/domain/model/order"
	"servicedesk/internal/core/ports"
)

// Proposer runs a proposal attempt for one order.
type Proposer interface {
	Handle(ctx context.Context, cmd ProposeOrderCommand) error
}

// CreateOrderCommandHandler persists a new searching order and immediately
// tries to propose it.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, notifier, proposer, logger)
//	id, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// the order exists even if no candidate was found
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	proposer   Proposer
	logger     *slog.Logger
}

func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	proposer Proposer,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		proposer:   proposer,
		logger:     logger.With("component", "create-order"),
	}
}

// Handle creates the order in its own transaction, notifies the client and
// then runs the first proposal attempt. A failed proposal is logged; the
// created order id is still returned.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.ID, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	id, err := orderRepo.NextID(ctx)
	if err != nil {
		return 0, err
	}

	o, err := order.NewOrder(id, cmd.Actor(), cmd.Details())
	if err != nil {
		return 0, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	announce(ctx, h.notifier, uow.PullEvents())

	proposeCmd, err := NewProposeOrderCommand(id, TriggerCreation)
	if err == nil {
		err = h.proposer.Handle(ctx, proposeCmd)
	}
	if err != nil && !IsBenignProposalError(err) {
		h.logger.ErrorContext(ctx, "first proposal failed", "order_id", id.Int64(), "error", err)
	}

	return id, nil
}
