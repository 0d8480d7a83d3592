// Package orderrepo maps order aggregates to the orders table.
package orderrepo

import (
	"time"

	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/core/domain/model/order"

	"github.com/lib/pq"
)

// OrderDTO is the row of an order. The id column is a bigserial; its sequence
// orders_id_seq hands out ids ahead of insertion.
type OrderDTO struct {
	ID                     int64         `gorm:"primaryKey;autoIncrement"`
	ClientID               int64         `gorm:"not null;index"`
	WorkerID               *int64        `gorm:"index"`
	OrganizationID         *int64        `gorm:"index"`
	ProposedWorkerID       *int64        `gorm:"index"`
	ProposedOrganizationID *int64        `gorm:"index"`
	Rejecters              pq.Int64Array `gorm:"type:bigint[];not null;default:'{}'"`
	State                  string        `gorm:"type:varchar(32);not null;index"`
	Active                 bool          `gorm:"not null;default:true;index"`
	Zone                   string        `gorm:"type:varchar(255);not null;index"`
	Description            string        `gorm:"type:text;not null"`
	Address                AddressDTO    `gorm:"embedded;embeddedPrefix:address_"`
	Latitude               *float64
	Longitude              *float64
	TechnicianNotes        string `gorm:"type:text;not null;default:''"`
	ScheduledVisitAt       *time.Time
	EstimatedResolutionAt  *time.Time
	Rating                 *int   `gorm:"type:smallint"`
	Comment                string `gorm:"type:text;not null;default:''"`
	Version                int64  `gorm:"not null;default:0"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is embedded into the orders row.
type AddressDTO struct {
	Street     string `gorm:"type:varchar(255)"`
	Number     string `gorm:"type:varchar(32)"`
	City       string `gorm:"type:varchar(255)"`
	Province   string `gorm:"type:varchar(255)"`
	PostalCode string `gorm:"type:varchar(32)"`
}

func fromDomain(o *order.Order) OrderDTO {
	details := o.Details()
	address := details.Address()

	dto := OrderDTO{
		ID:                     o.ID().Int64(),
		ClientID:               o.ClientID().Int64(),
		WorkerID:               kernel.Int64Ptr(o.WorkerID()),
		OrganizationID:         kernel.Int64Ptr(o.OrganizationID()),
		ProposedWorkerID:       kernel.Int64Ptr(o.ProposedWorkerID()),
		ProposedOrganizationID: kernel.Int64Ptr(o.ProposedOrganizationID()),
		Rejecters:              pq.Int64Array(o.Rejecters().Int64s()),
		State:                  o.Status().String(),
		Active:                 o.IsActive(),
		Zone:                   details.Zone().String(),
		Description:            details.Description(),
		Address: AddressDTO{
			Street:     address.Street,
			Number:     address.Number,
			City:       address.City,
			Province:   address.Province,
			PostalCode: address.PostalCode,
		},
		TechnicianNotes:       o.TechnicianNotes(),
		ScheduledVisitAt:      o.ScheduledVisitAt(),
		EstimatedResolutionAt: o.EstimatedResolutionAt(),
		Version:               o.Version(),
		CreatedAt:             o.CreatedAt(),
		UpdatedAt:             o.UpdatedAt(),
	}

	if loc := details.Location(); loc != nil {
		lat, lng := loc.Lat(), loc.Lng()
		dto.Latitude = &lat
		dto.Longitude = &lng
	}

	if r := o.Rating(); r != nil {
		score := r.Score()
		dto.Rating = &score
		dto.Comment = r.Comment()
	}

	if dto.Rejecters == nil {
		dto.Rejecters = pq.Int64Array{}
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	status, err := order.ParseStatus(dto.State)
	if err != nil {
		return nil, err
	}

	zone, err := kernel.NewZone(dto.Zone)
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		p, pointErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &p
	}

	details, err := order.NewDetails(dto.Description, order.Address{
		Street:     dto.Address.Street,
		Number:     dto.Address.Number,
		City:       dto.Address.City,
		Province:   dto.Address.Province,
		PostalCode: dto.Address.PostalCode,
	}, location, zone)
	if err != nil {
		return nil, err
	}

	var rating *order.Rating
	if dto.Rating != nil {
		r, ratingErr := order.NewRating(*dto.Rating, dto.Comment)
		if ratingErr != nil {
			return nil, ratingErr
		}
		rating = &r
	}

	rejecters := make([]kernel.ID, 0, len(dto.Rejecters))
	for _, id := range dto.Rejecters {
		rejecters = append(rejecters, kernel.ID(id))
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                     kernel.ID(dto.ID),
		ClientID:               kernel.ID(dto.ClientID),
		WorkerID:               kernel.IDPtr(dto.WorkerID),
		OrganizationID:         kernel.IDPtr(dto.OrganizationID),
		ProposedWorkerID:       kernel.IDPtr(dto.ProposedWorkerID),
		ProposedOrganizationID: kernel.IDPtr(dto.ProposedOrganizationID),
		Rejecters:              order.NewRejecters(rejecters...),
		Status:                 status,
		Active:                 dto.Active,
		Details:                details,
		TechnicianNotes:        dto.TechnicianNotes,
		ScheduledVisitAt:       dto.ScheduledVisitAt,
		EstimatedResolutionAt:  dto.EstimatedResolutionAt,
		Rating:                 rating,
		Version:                dto.Version,
		CreatedAt:              dto.CreatedAt,
		UpdatedAt:              dto.UpdatedAt,
	})
}
