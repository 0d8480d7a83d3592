package queries

import (
	"errors"
	"time"

	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/pkg/guard"

	"github.com/google/uuid"
)

var (
	ErrListNotificationsQueryIsNotConstructed = errors.New(
		"ListNotificationsQuery must be created via NewListNotificationsQuery constructor",
	)
)

// ListNotificationsQuery pages through one recipient's inbox, newest first.
// A nil read filter returns read and unread entries alike.
type ListNotificationsQuery struct { //nolint:recvcheck //using for validation
	recipientID kernel.ID
	page        kernel.Page
	read        *bool
	guard       guard.ConstructorGuard
}

func NewListNotificationsQuery(recipientID kernel.ID, page kernel.Page, read *bool) (ListNotificationsQuery, error) {
	if err := errors.Join(recipientID.Validate(), page.Validate()); err != nil {
		return ListNotificationsQuery{}, err
	}

	return ListNotificationsQuery{
		recipientID: recipientID,
		page:        page,
		read:        read,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q ListNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListNotificationsQueryIsNotConstructed)
}

func (q ListNotificationsQuery) RecipientID() kernel.ID {
	return q.recipientID
}

func (q ListNotificationsQuery) Page() kernel.Page {
	return q.page
}

func (q ListNotificationsQuery) Read() *bool {
	return q.read
}

type NotificationView struct {
	ID        uuid.UUID
	Kind      string
	Text      string
	OrderID   *int64
	SenderID  *int64
	Link      string
	Read      bool
	CreatedAt time.Time
}

type ListNotificationsQueryResponse struct {
	Items        []NotificationView
	TotalResults int64
	TotalPages   int
	CurrentPage  int
}
