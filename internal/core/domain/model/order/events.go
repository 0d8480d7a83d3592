package order

import (
	"time"

	"servicedesk/internal/core/domain/model/account"
	"servicedesk/internal/core/domain/model/kernel"
)

// EventKind names a fact recorded by an order mutation.
type EventKind string

const (
	EventCreated              EventKind = "created"
	EventProposed             EventKind = "proposed"
	EventAccepted             EventKind = "accepted"
	EventRejected             EventKind = "rejected"
	EventOrganizationAssigned EventKind = "organization_assigned"
	EventWorkerAssigned       EventKind = "worker_assigned"
	EventStatusChanged        EventKind = "status_changed"
	EventCancelled            EventKind = "cancelled"
	EventRated                EventKind = "rated"
	EventDeleted              EventKind = "deleted"
	EventReactivated          EventKind = "reactivated"
	EventWorkNotesUpdated     EventKind = "work_notes_updated"
)

// Event is recorded by the aggregate and published once the transaction that
// persisted it has committed. It carries the parties as they were right after
// the mutation.
type Event struct {
	Kind                   EventKind
	OrderID                kernel.ID
	ActorID                *kernel.ID
	ActorRole              account.Role
	ClientID               kernel.ID
	WorkerID               *kernel.ID
	OrganizationID         *kernel.ID
	ProposedWorkerID       *kernel.ID
	ProposedOrganizationID *kernel.ID
	Status                 Status
	OccurredAt             time.Time
}

func (o *Order) record(kind EventKind, actor *account.Actor) {
	e := Event{
		Kind:                   kind,
		OrderID:                o.id,
		ClientID:               o.clientID,
		WorkerID:               copyID(o.workerID),
		OrganizationID:         copyID(o.organizationID),
		ProposedWorkerID:       copyID(o.proposedWorkerID),
		ProposedOrganizationID: copyID(o.proposedOrganizationID),
		Status:                 o.status,
		OccurredAt:             o.updatedAt,
	}
	if actor != nil {
		id := actor.ID()
		e.ActorID = &id
		e.ActorRole = actor.Role()
	}
	o.events = append(o.events, e)
}

// PullEvents returns the recorded events and forgets them.
func (o *Order) PullEvents() []Event {
	events := o.events
	o.events = nil
	return events
}

func copyID(id *kernel.ID) *kernel.ID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
