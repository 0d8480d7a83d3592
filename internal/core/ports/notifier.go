package ports

import (
	"context"

	"servicedesk/internal/core/domain/model/account"
	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/core/domain/model/notification"
)

// Notifier delivers messages to accounts in real time and stores them in
// their inbox. Delivery is best effort: calls never block on delivery and
// failures are not reported to the caller.
type Notifier interface {
	Notify(ctx context.Context, recipientID kernel.ID, msg notification.Message)
	NotifyRoles(ctx context.Context, roles []account.Role, msg notification.Message)
}
