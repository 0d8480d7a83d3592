package ports

import (
	"context"

	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationRepository stores the per-account inbox.
type NotificationRepository interface {
	Add(ctx context.Context, aggregate *notification.Notification) error

	// Get returns the notification only if it belongs to recipientID.
	Get(ctx context.Context, id uuid.UUID, recipientID kernel.ID) (*notification.Notification, error)

	Update(ctx context.Context, aggregate *notification.Notification) error

	// MarkAllRead flags every unread notification of recipientID as read and
	// returns how many changed.
	MarkAllRead(ctx context.Context, recipientID kernel.ID) (int64, error)
}
