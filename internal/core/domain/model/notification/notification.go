package notification

import (
	"errors"
	"strings"
	"time"

	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/pkg/errs"
	"servicedesk/internal/pkg/guard"

	"github.com/google/uuid"
)

var (
	ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification constructor")
	ErrMessageIsRequired            = errs.NewValueIsRequiredError("message")
)

// Message is the content of a notification before it is addressed to a
// recipient.
type Message struct {
	Kind     Kind
	Text     string
	OrderID  *kernel.ID
	SenderID *kernel.ID
	Link     string
}

func (m Message) Validate() error {
	if err := m.Kind.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(m.Text) == "" {
		return ErrMessageIsRequired
	}
	return nil
}

// Notification is a message stored in one recipient's inbox.
type Notification struct {
	id          uuid.UUID
	recipientID kernel.ID
	message     Message
	read        bool
	createdAt   time.Time
	guard       guard.ConstructorGuard
}

// NewNotification addresses msg to recipient as an unread notification.
func NewNotification(recipientID kernel.ID, msg Message) (*Notification, error) {
	return RestoreNotification(uuid.New(), recipientID, msg, false, time.Now().UTC())
}

// RestoreNotification rebuilds a notification from persistence.
func RestoreNotification(
	id uuid.UUID,
	recipientID kernel.ID,
	msg Message,
	read bool,
	createdAt time.Time,
) (*Notification, error) {
	if id == uuid.Nil {
		return nil, errs.NewValueIsRequiredError("id")
	}
	if err := errors.Join(recipientID.Validate(), msg.Validate()); err != nil {
		return nil, err
	}

	msg.Text = strings.TrimSpace(msg.Text)
	return &Notification{
		id:          id,
		recipientID: recipientID,
		message:     msg,
		read:        read,
		createdAt:   createdAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (n *Notification) Validate() error {
	if n == nil {
		return ErrNotificationIsNotConstructed
	}
	return n.guard.Validate(ErrNotificationIsNotConstructed)
}

func (n *Notification) ID() uuid.UUID {
	return n.id
}

func (n *Notification) RecipientID() kernel.ID {
	return n.recipientID
}

func (n *Notification) Message() Message {
	return n.message
}

func (n *Notification) IsRead() bool {
	return n.read
}

func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// MarkRead flags the notification as read. It is idempotent.
func (n *Notification) MarkRead() {
	n.read = true
}
