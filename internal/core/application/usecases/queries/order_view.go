package queries

import (
	"time"

	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/core/domain/model/order"
)

// OrderView is the read model of an order as it crosses the API boundary.
type OrderView struct {
	ID                     int64
	ClientID               int64
	WorkerID               *int64
	OrganizationID         *int64
	ProposedWorkerID       *int64
	ProposedOrganizationID *int64
	Rejecters              []int64
	State                  string
	Active                 bool
	Zone                   string
	Description            string
	Address                AddressView
	Location               *LocationView
	TechnicianNotes        string
	ScheduledVisitAt       *time.Time
	EstimatedResolutionAt  *time.Time
	Rating                 *int
	Comment                string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

type AddressView struct {
	Street     string
	Number     string
	City       string
	Province   string
	PostalCode string
}

type LocationView struct {
	Lat float64
	Lng float64
}

// NewOrderView projects an order aggregate.
func NewOrderView(o *order.Order) OrderView {
	details := o.Details()
	address := details.Address()

	v := OrderView{
		ID:                     o.ID().Int64(),
		ClientID:               o.ClientID().Int64(),
		WorkerID:               kernel.Int64Ptr(o.WorkerID()),
		OrganizationID:         kernel.Int64Ptr(o.OrganizationID()),
		ProposedWorkerID:       kernel.Int64Ptr(o.ProposedWorkerID()),
		ProposedOrganizationID: kernel.Int64Ptr(o.ProposedOrganizationID()),
		Rejecters:              o.Rejecters().Int64s(),
		State:                  o.Status().String(),
		Active:                 o.IsActive(),
		Zone:                   details.Zone().String(),
		Description:            details.Description(),
		Address:                AddressView(address),
		TechnicianNotes:        o.TechnicianNotes(),
		ScheduledVisitAt:       o.ScheduledVisitAt(),
		EstimatedResolutionAt:  o.EstimatedResolutionAt(),
		CreatedAt:              o.CreatedAt(),
		UpdatedAt:              o.UpdatedAt(),
	}
	if v.Rejecters == nil {
		v.Rejecters = []int64{}
	}
	if loc := details.Location(); loc != nil {
		v.Location = &LocationView{Lat: loc.Lat(), Lng: loc.Lng()}
	}
	if r := o.Rating(); r != nil {
		score := r.Score()
		v.Rating = &score
		v.Comment = r.Comment()
	}
	return v
}
