package jobs

import (
	"context"
	"log/slog"

	"servicedesk/internal/core/application/usecases/commands"
	"servicedesk/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

const (
	DefaultRetrySchedule  = "@every 30s"
	DefaultRetryBatchSize = 100
)

// SearchingOrders lists the active orders that still have no candidate.
type SearchingOrders interface {
	ListSearchingIDs(ctx context.Context, limit int) ([]kernel.ID, error)
}

// ProposalRetryJob periodically re-queues searching orders, so an order that
// found nobody eligible gets proposed once a candidate appears in its zone.
type ProposalRetryJob struct {
	orders    SearchingOrders
	scheduler commands.ProposalScheduler
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewProposalRetryJob(
	orders SearchingOrders,
	scheduler commands.ProposalScheduler,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) *ProposalRetryJob {
	if schedule == "" {
		schedule = DefaultRetrySchedule
	}
	if batchSize <= 0 {
		batchSize = DefaultRetryBatchSize
	}
	return &ProposalRetryJob{
		orders:    orders,
		scheduler: scheduler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(),
		logger:    logger.With("component", "proposal_retry_job"),
	}
}

func (j *ProposalRetryJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Proposal retry job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Proposal retry job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running pass to finish.
func (j *ProposalRetryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Proposal retry job stopped")
}

// RunOnce queues one batch of searching orders and reports how many were queued.
func (j *ProposalRetryJob) RunOnce(ctx context.Context) (int, error) {
	ids, err := j.orders.ListSearchingIDs(ctx, j.batchSize)
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		j.scheduler.Schedule(id, commands.TriggerRetry)
	}
	if len(ids) > 0 {
		j.logger.DebugContext(ctx, "Searching orders queued for retry", "count", len(ids))
	}
	return len(ids), nil
}
