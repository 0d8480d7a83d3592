// Package notificationrepo stores account inboxes in the notifications table.
package notificationrepo

import (
	"time"

	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

type NotificationDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipientID int64     `gorm:"not null;index:idx_notifications_inbox,priority:1"`
	Kind        string    `gorm:"type:varchar(64);not null"`
	Text        string    `gorm:"type:text;not null"`
	OrderID     *int64    `gorm:"index"`
	SenderID    *int64
	Link        string    `gorm:"type:varchar(255)"`
	Read        bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"index:idx_notifications_inbox,priority:2"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n *notification.Notification) NotificationDTO {
	msg := n.Message()
	return NotificationDTO{
		ID:          n.ID(),
		RecipientID: n.RecipientID().Int64(),
		Kind:        msg.Kind.String(),
		Text:        msg.Text,
		OrderID:     kernel.Int64Ptr(msg.OrderID),
		SenderID:    kernel.Int64Ptr(msg.SenderID),
		Link:        msg.Link,
		Read:        n.IsRead(),
		CreatedAt:   n.CreatedAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	kind, err := notification.ParseKind(dto.Kind)
	if err != nil {
		return nil, err
	}

	return notification.RestoreNotification(
		dto.ID,
		kernel.ID(dto.RecipientID),
		notification.Message{
			Kind:     kind,
			Text:     dto.Text,
			OrderID:  kernel.IDPtr(dto.OrderID),
			SenderID: kernel.IDPtr(dto.SenderID),
			Link:     dto.Link,
		},
		dto.Read,
		dto.CreatedAt,
	)
}
