// Package jobs runs the background work of the service desk.
//
// # Available Jobs
//
//  1. ProposalWorker - a fixed pool of goroutines running queued proposal
//     attempts. Command handlers queue attempts through Schedule after a
//     rejection or a reactivation.
//  2. ProposalRetryJob - a github.com/robfig/cron/v3 job that re-queues
//     searching orders so they get proposed once somebody eligible exists.
//
// # Usage
//
//	worker := jobs.NewProposalWorker(proposeHandler, jobs.ProposalWorkerOptions{}, logger)
//	retry := jobs.NewProposalRetryJob(orders, worker, jobs.DefaultRetrySchedule, 0, logger)
//	jobManager := jobs.NewJobManager(worker, retry)
//
//	if err := jobManager.StartAll(ctx); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Benign proposal outcomes (the order stopped searching, nobody is eligible)
// are logged at debug level. Anything else is logged as an error; the order
// stays searching and the retry job tries again.
package jobs
