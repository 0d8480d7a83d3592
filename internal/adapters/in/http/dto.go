package http

import (
	"time"

	"servicedesk/internal/core/application/usecases/commands"
	"servicedesk/internal/core/application/usecases/queries"
	"servicedesk/internal/core/domain/model/order"

	"github.com/google/uuid"
)

type AddressDTO struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
}

type LocationDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type NewOrderRequest struct {
	Description string       `json:"description"`
	Zone        string       `json:"zone"`
	Address     AddressDTO   `json:"address"`
	Location    *LocationDTO `json:"location"`
}

func (r NewOrderRequest) address() order.Address {
	return order.Address(r.Address)
}

type OrderPatchRequest struct {
	OrganizationID        *int64     `json:"organizationId"`
	WorkerID              *int64     `json:"workerId"`
	State                 *string    `json:"state"`
	TechnicianNotes       *string    `json:"technicianNotes"`
	ScheduledVisitAt      *time.Time `json:"scheduledVisitAt"`
	EstimatedResolutionAt *time.Time `json:"estimatedResolutionAt"`
	Rating                *int       `json:"rating"`
	Comment               *string    `json:"comment"`
}

func (r OrderPatchRequest) patch() commands.OrderPatch {
	return commands.OrderPatch(r)
}

type OrderResponse struct {
	ID                     int64        `json:"id"`
	ClientID               int64        `json:"clientId"`
	WorkerID               *int64       `json:"workerId"`
	OrganizationID         *int64       `json:"organizationId"`
	ProposedWorkerID       *int64       `json:"proposedWorkerId"`
	ProposedOrganizationID *int64       `json:"proposedOrganizationId"`
	Rejecters              []int64      `json:"rejecters"`
	State                  string       `json:"state"`
	Active                 bool         `json:"active"`
	Zone                   string       `json:"zone"`
	Description            string       `json:"description"`
	Address                AddressDTO   `json:"address"`
	Location               *LocationDTO `json:"location,omitempty"`
	TechnicianNotes        string       `json:"technicianNotes"`
	ScheduledVisitAt       *time.Time   `json:"scheduledVisitAt"`
	EstimatedResolutionAt  *time.Time   `json:"estimatedResolutionAt"`
	Rating                 *int         `json:"rating"`
	Comment                string       `json:"comment"`
	CreatedAt              time.Time    `json:"createdAt"`
	UpdatedAt              time.Time    `json:"updatedAt"`
}

func toOrderResponse(v queries.OrderView) OrderResponse {
	r := OrderResponse{
		ID:                     v.ID,
		ClientID:               v.ClientID,
		WorkerID:               v.WorkerID,
		OrganizationID:         v.OrganizationID,
		ProposedWorkerID:       v.ProposedWorkerID,
		ProposedOrganizationID: v.ProposedOrganizationID,
		Rejecters:              v.Rejecters,
		State:                  v.State,
		Active:                 v.Active,
		Zone:                   v.Zone,
		Description:            v.Description,
		Address:                AddressDTO(v.Address),
		TechnicianNotes:        v.TechnicianNotes,
		ScheduledVisitAt:       v.ScheduledVisitAt,
		EstimatedResolutionAt:  v.EstimatedResolutionAt,
		Rating:                 v.Rating,
		Comment:                v.Comment,
		CreatedAt:              v.CreatedAt,
		UpdatedAt:              v.UpdatedAt,
	}
	if r.Rejecters == nil {
		r.Rejecters = []int64{}
	}
	if v.Location != nil {
		r.Location = &LocationDTO{Lat: v.Location.Lat, Lng: v.Location.Lng}
	}
	return r
}

type OrderPageResponse struct {
	Items        []OrderResponse `json:"items"`
	TotalResults int64           `json:"totalResults"`
	TotalPages   int             `json:"totalPages"`
	CurrentPage  int             `json:"currentPage"`
}

func toOrderPage(p queries.ListOrdersQueryResponse) OrderPageResponse {
	items := make([]OrderResponse, 0, len(p.Items))
	for _, v := range p.Items {
		items = append(items, toOrderResponse(v))
	}
	return OrderPageResponse{
		Items:        items,
		TotalResults: p.TotalResults,
		TotalPages:   p.TotalPages,
		CurrentPage:  p.CurrentPage,
	}
}

type NotificationResponse struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Text      string    `json:"text"`
	OrderID   *int64    `json:"orderId,omitempty"`
	SenderID  *int64    `json:"senderId,omitempty"`
	Link      string    `json:"link,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

type NotificationPageResponse struct {
	Items        []NotificationResponse `json:"items"`
	TotalResults int64                  `json:"totalResults"`
	TotalPages   int                    `json:"totalPages"`
	CurrentPage  int                    `json:"currentPage"`
}

func toNotificationPage(p queries.ListNotificationsQueryResponse) NotificationPageResponse {
	items := make([]NotificationResponse, 0, len(p.Items))
	for _, v := range p.Items {
		items = append(items, NotificationResponse(v))
	}
	return NotificationPageResponse{
		Items:        items,
		TotalResults: p.TotalResults,
		TotalPages:   p.TotalPages,
		CurrentPage:  p.CurrentPage,
	}
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
