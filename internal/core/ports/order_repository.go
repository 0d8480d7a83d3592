// Package ports defines the contracts between the order engine and its
// infrastructure: repositories bound to a unit of work and the notifier.
package ports

import (
	"context"

	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// NextID allocates the id of an order that is about to be created.
	NextID(ctx context.Context) (kernel.ID, error)

	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. It fails with a version
	// error when the stored order changed since it was read.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order without locking it.
	Get(ctx context.Context, id kernel.ID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the surrounding
	// transaction ends. Concurrent read-modify-write cycles on the same order
	// are serialized by this lock.
	GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error)

	// ListSearchingIDs returns up to limit ids of active orders still looking
	// for a candidate, oldest first.
	ListSearchingIDs(ctx context.Context, limit int) ([]kernel.ID, error)
}
