package notification_test

import (
	"testing"

	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/core/domain/model/notification"
	"servicedesk/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, k := range notification.AllKinds() {
		parsed, err := notification.ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := notification.ParseKind("order_exploded")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewNotification(t *testing.T) {
	orderID := kernel.ID(10)
	msg := notification.Message{
		Kind:    notification.KindProposalReceived,
		Text:    "  You have a new proposal ",
		OrderID: &orderID,
		Link:    "/orders/10",
	}

	t.Run("should create an unread notification", func(t *testing.T) {
		n, err := notification.NewNotification(2, msg)

		require.NoError(t, err)
		require.NoError(t, n.Validate())
		assert.NotEqual(t, uuid.Nil, n.ID())
		assert.Equal(t, kernel.ID(2), n.RecipientID())
		assert.Equal(t, "You have a new proposal", n.Message().Text)
		assert.False(t, n.IsRead())
		assert.False(t, n.CreatedAt().IsZero())
	})

	t.Run("should mark read idempotently", func(t *testing.T) {
		n, err := notification.NewNotification(2, msg)
		require.NoError(t, err)

		n.MarkRead()
		n.MarkRead()

		assert.True(t, n.IsRead())
	})

	t.Run("should validate recipient and message", func(t *testing.T) {
		_, err := notification.NewNotification(0, notification.Message{Kind: "nope"})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should require text", func(t *testing.T) {
		_, err := notification.NewNotification(2, notification.Message{Kind: notification.KindNoCandidates, Text: " "})

		require.ErrorIs(t, err, notification.ErrMessageIsRequired)
	})
}
