package services

import (
	"servicedesk/internal/core/domain/model/account"
	"servicedesk/internal/core/domain/model/kernel"
)

// OrderVisibility describes which orders an actor may list. A nil id field
// means the clause does not apply.
type OrderVisibility struct {
	// All is set for platform admins, who are not restricted by party.
	All bool
	// ActiveOnly hides soft-deleted orders.
	ActiveOnly bool

	ClientID               *kernel.ID
	WorkerID               *kernel.ID
	ProposedWorkerID       *kernel.ID
	OrganizationID         *kernel.ID
	ProposedOrganizationID *kernel.ID
	// IncludeSearching adds every order that is still looking for a candidate.
	IncludeSearching bool
}

// VisibilityFor returns the listing scope of actor. includeInactive is only
// honoured for platform admins.
func VisibilityFor(actor account.Actor, includeInactive bool) (OrderVisibility, error) {
	if err := actor.Validate(); err != nil {
		return OrderVisibility{}, err
	}

	id := actor.ID()
	v := OrderVisibility{ActiveOnly: true}

	switch actor.Role() {
	case account.RolePlatformAdmin:
		v.All = true
		v.ActiveOnly = !includeInactive
	case account.RoleOrganizationAdmin:
		v.OrganizationID = &id
		v.ProposedOrganizationID = &id
	case account.RoleWorker:
		v.WorkerID = &id
		v.ProposedWorkerID = &id
		v.IncludeSearching = true
	case account.RoleClient:
		v.ClientID = &id
	case account.RoleUnknown:
		return OrderVisibility{}, actor.Role().Validate()
	}

	return v, nil
}
