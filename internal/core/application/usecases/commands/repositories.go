// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// persistence and, once committed, notification of the affected parties.
package commands

import (
	"context"

	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/core/domain/model/order"
	"servicedesk/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// EventSource drains the order events recorded during a transaction.
	EventSource interface {
		PullEvents() []order.Event
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// AccountRepoFactory provides access to account repository within a transaction.
	AccountRepoFactory interface {
		AccountRepository() ports.AccountRepository
	}

	// NotificationRepoFactory provides access to the inbox within a transaction.
	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// UoW manages transactions across orders and the accounts they refer to.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, id)
	//   // ... mutate and Update
	//
	//   err = uow.Commit(ctx)
	//   events := uow.PullEvents()
	UoW interface {
		TxManager
		EventSource
		OrderRepoFactory
		AccountRepoFactory
	}

	// UoWFactory creates new unit of work instances for order operations.
	UoWFactory interface {
		Create() UoW
	}

	// NotificationUoW manages transactions over the inbox only.
	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	// NotificationUoWFactory creates new inbox unit of work instances.
	NotificationUoWFactory interface {
		Create() NotificationUoW
	}
)

// ProposalScheduler queues an order for a proposal attempt outside the
// current request. Schedule never blocks.
type ProposalScheduler interface {
	Schedule(orderID kernel.ID, trigger ProposalTrigger)
}
