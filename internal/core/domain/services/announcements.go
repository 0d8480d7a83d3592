package services

import (
	"fmt"

	"servicedesk/internal/core/domain/model/account"
	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/core/domain/model/notification"
	"servicedesk/internal/core/domain/model/order"
)

// Announcement is a message addressed either to one account or to every
// active account holding one of Roles.
type Announcement struct {
	RecipientID *kernel.ID
	Roles       []account.Role
	Message     notification.Message
}

// Announcements returns who hears about e and what they are told.
func Announcements(e order.Event) []Announcement {
	b := announcementBuilder{event: e}

	switch e.Kind {
	case order.EventCreated:
		b.to(&e.ClientID, notification.KindOrderCreated, "Your order #%d was created and is looking for a technician")
	case order.EventProposed:
		b.to(e.ProposedWorkerID, notification.KindProposalReceived, "Order #%d was proposed to you")
		b.to(e.ProposedOrganizationID, notification.KindProposalReceived, "Order #%d was proposed to your organization")
	case order.EventAccepted:
		b.to(&e.ClientID, notification.KindOrderAssigned, "Your order #%d was accepted")
		switch e.ActorRole {
		case account.RoleOrganizationAdmin:
			b.to(e.OrganizationID, notification.KindOrderAssignedToOrganization, "Order #%d is assigned to your organization")
		case account.RoleWorker:
			b.to(e.WorkerID, notification.KindOrderAssigned, "Order #%d is assigned to you")
		case account.RoleClient, account.RolePlatformAdmin, account.RoleUnknown:
		}
	case order.EventRejected:
		b.toRoles(notification.KindProposalRejected, "Order #%d was rejected and is searching again", account.RolePlatformAdmin)
	case order.EventOrganizationAssigned:
		b.to(e.OrganizationID, notification.KindOrganizationAssigned, "Order #%d was assigned to your organization")
	case order.EventWorkerAssigned:
		b.to(e.WorkerID, notification.KindWorkerAssigned, "Order #%d was assigned to you")
		b.to(&e.ClientID, notification.KindWorkerAssigned, "A technician was assigned to your order #%d")
	case order.EventStatusChanged:
		text := fmt.Sprintf("Order #%%d is now %s", e.Status)
		b.to(&e.ClientID, notification.KindStatusChanged, text)
		if e.WorkerID == nil || !kernel.SameID(e.ActorID, *e.WorkerID) {
			b.to(e.WorkerID, notification.KindStatusChanged, text)
		}
	case order.EventCancelled:
		b.to(e.WorkerID, notification.KindOrderCancelled, "Order #%d was cancelled by the client")
		b.to(e.OrganizationID, notification.KindOrderCancelled, "Order #%d was cancelled by the client")
	case order.EventRated:
		b.to(e.WorkerID, notification.KindOrderRated, "Order #%d was rated by the client")
		b.to(e.OrganizationID, notification.KindOrderRated, "Order #%d was rated by the client")
	case order.EventDeleted:
		b.to(&e.ClientID, notification.KindOrderDeleted, "Your order #%d was removed by an administrator")
		b.to(e.WorkerID, notification.KindOrderDeleted, "Order #%d was removed by an administrator")
	case order.EventReactivated:
		b.to(&e.ClientID, notification.KindOrderReactivated, "Your order #%d was reactivated")
	case order.EventWorkNotesUpdated:
	}

	return b.out
}

// NoCandidatesAnnouncement tells platform admins that orderID found nobody
// to propose to.
func NoCandidatesAnnouncement(orderID kernel.ID) Announcement {
	id := orderID
	return Announcement{
		Roles: []account.Role{account.RolePlatformAdmin},
		Message: notification.Message{
			Kind:    notification.KindNoCandidates,
			Text:    fmt.Sprintf("Order #%d has no eligible technicians", orderID),
			OrderID: &id,
			Link:    orderLink(orderID),
		},
	}
}

type announcementBuilder struct {
	event order.Event
	out   []Announcement
	seen  map[kernel.ID]struct{}
}

func (b *announcementBuilder) to(recipient *kernel.ID, kind notification.Kind, format string) {
	if recipient == nil {
		return
	}
	if b.seen == nil {
		b.seen = make(map[kernel.ID]struct{})
	}
	if _, ok := b.seen[*recipient]; ok {
		return
	}
	b.seen[*recipient] = struct{}{}

	id := *recipient
	b.out = append(b.out, Announcement{RecipientID: &id, Message: b.message(kind, format)})
}

func (b *announcementBuilder) toRoles(kind notification.Kind, format string, roles ...account.Role) {
	b.out = append(b.out, Announcement{Roles: roles, Message: b.message(kind, format)})
}

func (b *announcementBuilder) message(kind notification.Kind, format string) notification.Message {
	orderID := b.event.OrderID
	return notification.Message{
		Kind:     kind,
		Text:     fmt.Sprintf(format, orderID.Int64()),
		OrderID:  &orderID,
		SenderID: copyID(b.event.ActorID),
		Link:     orderLink(orderID),
	}
}

func orderLink(id kernel.ID) string {
	return "/orders/" + id.String()
}

func copyID(id *kernel.ID) *kernel.ID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
