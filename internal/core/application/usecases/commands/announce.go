package commands

import (
	"context"

	"servicedesk/internal/core/domain/model/order"
	"servicedesk/internal/core/domain/services"
	"servicedesk/internal/core/ports"
	"servicedesk/internal/pkg/metrics"
)

// announce hands committed events to the notifier. It must only run after
// the transaction that recorded events has committed.
func announce(ctx context.Context, notifier ports.Notifier, events []order.Event) {
	for _, e := range events {
		metrics.TransitionsTotal.WithLabelValues(string(e.Kind)).Inc()
		for _, a := range services.Announcements(e) {
			deliver(ctx, notifier, a)
		}
	}
}

func deliver(ctx context.Context, notifier ports.Notifier, a services.Announcement) {
	if a.RecipientID != nil {
		notifier.Notify(ctx, *a.RecipientID, a.Message)
		return
	}
	notifier.NotifyRoles(ctx, a.Roles, a.Message)
}
