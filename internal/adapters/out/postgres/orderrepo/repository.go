package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"servicedesk/internal/adapters/out/postgres/dberrs"
	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/core/domain/model/order"
	"servicedesk/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// NextID draws the next order id from the orders sequence.
func (r *GormOrderRepository) NextID(ctx context.Context) (kernel.ID, error) {
	var id int64
	if err := r.db.WithContext(ctx).Raw("SELECT nextval('orders_id_seq')").Scan(&id).Error; err != nil {
		return 0, dberrs.Classify(err)
	}
	return kernel.NewID(id)
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberrs.Classify(err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every column of the order if the stored version still
// matches the one it was read with, and bumps the version.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Omit("id", "client_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return dberrs.Classify(result.Error)
	}

	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate)
	}

	aggregate.MarkPersisted(dto.Version)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves an order by ID and holds a row lock on it until the
// transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// ListSearchingIDs returns active searching orders, oldest first.
func (r *GormOrderRepository) ListSearchingIDs(ctx context.Context, limit int) ([]kernel.ID, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsInvalidError("limit")
	}

	var raw []int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("active AND state = ?", order.Searching.String()).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Pluck("id", &raw).Error
	if err != nil {
		return nil, dberrs.Classify(err)
	}

	ids := make([]kernel.ID, 0, len(raw))
	for _, id := range raw {
		ids = append(ids, kernel.ID(id))
	}
	return ids, nil
}

func (r *GormOrderRepository) get(db *gorm.DB, id kernel.ID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := db.First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, dberrs.Classify(err)
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) missingOrStale(ctx context.Context, aggregate *order.Order) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", aggregate.ID().Int64()).Count(&count).Error
	if err != nil {
		return dberrs.Classify(err)
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return errs.NewVersionIsInvalidError(
		"order",
		fmt.Errorf("order %s changed since version %d was read", aggregate.ID(), aggregate.Version()),
	)
}
