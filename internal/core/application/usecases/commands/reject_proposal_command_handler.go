package commands

import (
	"context"

	"servicedesk/internal/core/ports"
	"servicedesk/internal/pkg/metrics"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RejectProposalCommandHandler records a rejection and puts the order back to
// searching. The next proposal attempt is queued on the scheduler once the
// rejection has committed; it runs as a separate operation.
type RejectProposalCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	scheduler  ProposalScheduler
}

func NewRejectProposalCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	scheduler ProposalScheduler,
) RejectProposalCommandHandler {
	return RejectProposalCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		scheduler:  scheduler,
	}
}

func (h RejectProposalCommandHandler) Handle(ctx context.Context, cmd RejectProposalCommand) (err error) {
	if err = cmd.Validate(); err != nil {
		return err
	}

	ctx, span := tracer.Start(ctx, "order.reject", trace.WithAttributes(
		attribute.Int64("order.id", cmd.OrderID().Int64()),
		attribute.Int64("actor.id", cmd.Actor().ID().Int64()),
	))
	defer func() {
		endSpan(span, err)
		metrics.ProposalResponsesTotal.WithLabelValues("reject", responseResult(err)).Inc()
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

	if err = o.Reject(cmd.Actor()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	announce(ctx, h.notifier, uow.PullEvents())
	h.scheduler.Schedule(cmd.OrderID(), TriggerRejection)
	return nil
}
