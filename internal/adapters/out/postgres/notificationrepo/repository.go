package notificationrepo

import (
	"context"
	"errors"

	"servicedesk/internal/adapters/out/postgres/dberrs"
	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/core/domain/model/notification"
	"servicedesk/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) Add(ctx context.Context, aggregate *notification.Notification) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberrs.Classify(err)
	}
	return nil
}

// Get returns the notification only when it belongs to recipientID; entries
// of other accounts are reported as missing.
func (r *GormNotificationRepository) Get(
	ctx context.Context,
	id uuid.UUID,
	recipientID kernel.ID,
) (*notification.Notification, error) {
	var dto NotificationDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ? AND recipient_id = ?", id, recipientID.Int64()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("notification", id.String())
		}
		return nil, dberrs.Classify(err)
	}

	return toDomain(dto)
}

// Update persists the read flag, the only mutable part of a notification.
func (r *GormNotificationRepository) Update(ctx context.Context, aggregate *notification.Notification) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ?", aggregate.ID()).
		Update("read", aggregate.IsRead())
	if result.Error != nil {
		return dberrs.Classify(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notification", aggregate.ID().String())
	}
	return nil
}

func (r *GormNotificationRepository) MarkAllRead(ctx context.Context, recipientID kernel.ID) (int64, error) {
	if err := recipientID.Validate(); err != nil {
		return 0, err
	}

	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("recipient_id = ? AND NOT read", recipientID.Int64()).
		Update("read", true)
	if result.Error != nil {
		return 0, dberrs.Classify(result.Error)
	}
	return result.RowsAffected, nil
}
