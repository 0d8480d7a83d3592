package queries

import (
	"context"

	"servicedesk/internal/adapters/out/postgres/dberrs"

	"gorm.io/gorm"
)

type ListNotificationsQueryHandler struct {
	db *gorm.DB
}

func NewListNotificationsQueryHandler(db *gorm.DB) ListNotificationsQueryHandler {
	return ListNotificationsQueryHandler{db: db}
}

func (h ListNotificationsQueryHandler) Handle(
	ctx context.Context,
	query ListNotificationsQuery,
) (ListNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListNotificationsQueryResponse{}, err
	}

	scope := h.db.WithContext(ctx).
		Table("notifications").
		Where("recipient_id = ?", query.RecipientID().Int64())
	if read := query.Read(); read != nil {
		scope = scope.Where("read = ?", *read)
	}

	var total int64
	if err := scope.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return ListNotificationsQueryResponse{}, dberrs.Classify(err)
	}

	page := query.Page()
	items := make([]NotificationView, 0, page.Size())
	if err := scope.Session(&gorm.Session{}).
		Select("id", "kind", "text", "order_id", "sender_id", "link", "read", "created_at").
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Size()).
		Find(&items).Error; err != nil {
		return ListNotificationsQueryResponse{}, dberrs.Classify(err)
	}

	return ListNotificationsQueryResponse{
		Items:        items,
		TotalResults: total,
		TotalPages:   page.TotalPages(total),
		CurrentPage:  page.Number(),
	}, nil
}
