package jobs

import (
	"context"
	"fmt"
)

// JobManager coordinates the background work of the service: the proposal
// worker pool and the retry job feeding it.
type JobManager struct {
	proposalWorker *ProposalWorker
	retryJob       *ProposalRetryJob
}

func NewJobManager(proposalWorker *ProposalWorker, retryJob *ProposalRetryJob) *JobManager {
	return &JobManager{
		proposalWorker: proposalWorker,
		retryJob:       retryJob,
	}
}

// StartAll starts the worker first so the retry job never queues into a
// pool that is not running.
func (jm *JobManager) StartAll(ctx context.Context) error {
	jm.proposalWorker.Start(ctx)

	if err := jm.retryJob.Start(); err != nil {
		jm.proposalWorker.Stop()
		return fmt.Errorf("failed to start proposal retry job: %w", err)
	}

	return nil
}

// StopAll stops the retry job, then drains the worker.
func (jm *JobManager) StopAll() {
	jm.retryJob.Stop()
	jm.proposalWorker.Stop()
}
