package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"servicedesk/internal/core/application/usecases/commands"
	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/pkg/metrics"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultProposalWorkers   = 4
	DefaultProposalQueueSize = 256
	DefaultProposalTimeout   = 10 * time.Second
)

// ProposeHandler runs one proposal attempt.
type ProposeHandler interface {
	Handle(ctx context.Context, cmd commands.ProposeOrderCommand) error
}

type ProposalWorkerOptions struct {
	Workers   int
	QueueSize int
	Timeout   time.Duration
}

type proposalRequest struct {
	orderID kernel.ID
	trigger commands.ProposalTrigger
}

// ProposalWorker runs queued proposal attempts on a fixed pool of goroutines.
// Schedule never blocks: when the queue is full the attempt is dropped and the
// retry job picks the order up on its next run.
type ProposalWorker struct {
	handler ProposeHandler
	queue   chan proposalRequest
	workers int
	timeout time.Duration
	logger  *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	group  *errgroup.Group
}

var _ commands.ProposalScheduler = (*ProposalWorker)(nil)

func NewProposalWorker(handler ProposeHandler, opts ProposalWorkerOptions, logger *slog.Logger) *ProposalWorker {
	if opts.Workers <= 0 {
		opts.Workers = DefaultProposalWorkers
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = DefaultProposalQueueSize
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultProposalTimeout
	}
	return &ProposalWorker{
		handler: handler,
		queue:   make(chan proposalRequest, opts.QueueSize),
		workers: opts.Workers,
		timeout: opts.Timeout,
		logger:  logger.With("component", "proposal_worker"),
	}
}

func (w *ProposalWorker) Schedule(orderID kernel.ID, trigger commands.ProposalTrigger) {
	select {
	case w.queue <- proposalRequest{orderID: orderID, trigger: trigger}:
	default:
		metrics.ProposalQueueDropped.Inc()
		w.logger.Warn("Proposal queue is full, dropping attempt",
			"order_id", orderID, "trigger", trigger.String())
	}
}

// Start launches the pool. Calling Start on a running worker is a no-op.
func (w *ProposalWorker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.group != nil {
		return
	}

	ctx, w.cancel = context.WithCancel(ctx)
	w.group, ctx = errgroup.WithContext(ctx)
	for range w.workers {
		w.group.Go(func() error {
			w.loop(ctx)
			return nil
		})
	}
	w.logger.InfoContext(ctx, "Proposal worker started", "workers", w.workers, "queue_size", cap(w.queue))
}

// Stop cancels the pool and waits for in-flight attempts to return. Queued
// attempts that never started are left to the retry job.
func (w *ProposalWorker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.group == nil {
		return
	}

	w.cancel()
	_ = w.group.Wait()
	w.group = nil
	w.logger.Info("Proposal worker stopped")
}

func (w *ProposalWorker) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-w.queue:
			w.process(ctx, req)
		}
	}
}

func (w *ProposalWorker) process(ctx context.Context, req proposalRequest) {
	cmd, err := commands.NewProposeOrderCommand(req.orderID, req.trigger)
	if err != nil {
		w.logger.ErrorContext(ctx, "Invalid proposal request", "order_id", req.orderID, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	err = w.handler.Handle(ctx, cmd)
	switch {
	case err == nil:
		w.logger.DebugContext(ctx, "Order proposed", "order_id", req.orderID, "trigger", req.trigger.String())
	case commands.IsBenignProposalError(err):
		w.logger.DebugContext(ctx, "Nothing to propose", "order_id", req.orderID, "reason", err)
	default:
		w.logger.ErrorContext(ctx, "Proposal attempt failed",
			"order_id", req.orderID, "trigger", req.trigger.String(), "error", err)
	}
}
