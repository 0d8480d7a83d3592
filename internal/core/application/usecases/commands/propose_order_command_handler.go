package commands

import (
	"context"
	"errors"

	"servicedesk/internal/core/domain/model/order"
	"servicedesk/internal/core/domain/services"
	"servicedesk/internal/core/ports"
	"servicedesk/internal/pkg/metrics"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ProposeOrderCommandHandler runs one proposal attempt. The order row is
// locked for the whole attempt, so concurrent attempts on the same order
// serialize and only the first one proposes.
//
// Outcomes:
//   - nil: the order now awaits acceptance by the chosen candidate
//   - order.ErrOrderNotSearching: nothing to do
//   - services.ErrNoCandidatesFound: nothing changed; platform admins are told
//     unless the attempt comes from the retry job
type ProposeOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	dispatcher services.OrderDispatcher
}

func NewProposeOrderCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) ProposeOrderCommandHandler {
	return ProposeOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		dispatcher: services.NewOrderDispatcher(),
	}
}

func (h ProposeOrderCommandHandler) Handle(ctx context.Context, cmd ProposeOrderCommand) (err error) {
	if err = cmd.Validate(); err != nil {
		return err
	}

	ctx, span := tracer.Start(ctx, "order.propose", trace.WithAttributes(
		attribute.Int64("order.id", cmd.OrderID().Int64()),
		attribute.String("proposal.trigger", cmd.Trigger().String()),
	))
	defer func() {
		endSpan(span, err)
		metrics.ProposalsTotal.WithLabelValues(proposalOutcome(err)).Inc()
	}()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if !o.IsSearching() {
		return order.ErrOrderNotSearching
	}

	pool, err := uow.AccountRepository().FindCandidatePool(ctx, o.Details().Zone())
	if err != nil {
		return err
	}

	chosen, err := h.dispatcher.Dispatch(o, pool)
	if errors.Is(err, services.ErrNoCandidatesFound) {
		if cmd.Trigger() != TriggerRetry {
			deliver(ctx, h.notifier, services.NoCandidatesAnnouncement(o.ID()))
		}
		return err
	}
	if err != nil {
		return err
	}

	span.SetAttributes(attribute.Int64("proposal.candidate", chosen.ID().Int64()))

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	announce(ctx, h.notifier, uow.PullEvents())
	return nil
}

func proposalOutcome(err error) string {
	switch {
	case err == nil:
		return "proposed"
	case errors.Is(err, services.ErrNoCandidatesFound):
		return "no_candidates"
	case IsBenignProposalError(err):
		return "not_searching"
	default:
		return "error"
	}
}
