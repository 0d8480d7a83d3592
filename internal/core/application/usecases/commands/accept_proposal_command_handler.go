package commands

import (
	"context"

	"servicedesk/internal/core/ports"
	"servicedesk/internal/pkg/metrics"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// AcceptProposalCommandHandler assigns an order to the party that accepts
// its proposal. The order row is locked and the update is version checked:
// of two concurrent accepts exactly one commits, the other sees the order
// already assigned and gets a conflict.
type AcceptProposalCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

func NewAcceptProposalCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) AcceptProposalCommandHandler {
	return AcceptProposalCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h AcceptProposalCommandHandler) Handle(ctx context.Context, cmd AcceptProposalCommand) (err error) {
	if err = cmd.Validate(); err != nil {
		return err
	}

	ctx, span := tracer.Start(ctx, "order.accept", trace.WithAttributes(
		attribute.Int64("order.id", cmd.OrderID().Int64()),
		attribute.Int64("actor.id", cmd.Actor().ID().Int64()),
	))
	defer func() {
		endSpan(span, err)
		metrics.ProposalResponsesTotal.WithLabelValues("accept", responseResult(err)).Inc()
	}()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
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

	if err = o.Accept(cmd.Actor()); err != nil {
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

func responseResult(err error) string {
	if err != nil {
		return "failed"
	}
	return "ok"
}
