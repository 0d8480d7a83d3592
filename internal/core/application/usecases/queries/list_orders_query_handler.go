package queries

import (
	"context"
	"strings"
	"time"

	"servicedesk/internal/adapters/out/postgres/dberrs"
	"servicedesk/internal/core/domain/model/order"
	"servicedesk/internal/core/domain/services"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// orderRow mirrors the columns of the orders table a listing needs.
type orderRow struct {
	ID                     int64
	ClientID               int64
	WorkerID               *int64
	OrganizationID         *int64
	ProposedWorkerID       *int64
	ProposedOrganizationID *int64
	Rejecters              pq.Int64Array
	State                  string
	Active                 bool
	Zone                   string
	Description            string
	AddressStreet          string
	AddressNumber          string
	AddressCity            string
	AddressProvince        string
	AddressPostalCode      string
	Latitude               *float64
	Longitude              *float64
	TechnicianNotes        string
	ScheduledVisitAt       *time.Time
	EstimatedResolutionAt  *time.Time
	Rating                 *int
	Comment                string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func (r orderRow) view() OrderView {
	v := OrderView{
		ID:                     r.ID,
		ClientID:               r.ClientID,
		WorkerID:               r.WorkerID,
		OrganizationID:         r.OrganizationID,
		ProposedWorkerID:       r.ProposedWorkerID,
		ProposedOrganizationID: r.ProposedOrganizationID,
		Rejecters:              []int64(r.Rejecters),
		State:                  r.State,
		Active:                 r.Active,
		Zone:                   r.Zone,
		Description:            r.Description,
		Address: AddressView{
			Street:     r.AddressStreet,
			Number:     r.AddressNumber,
			City:       r.AddressCity,
			Province:   r.AddressProvince,
			PostalCode: r.AddressPostalCode,
		},
		TechnicianNotes:       r.TechnicianNotes,
		ScheduledVisitAt:      r.ScheduledVisitAt,
		EstimatedResolutionAt: r.EstimatedResolutionAt,
		Rating:                r.Rating,
		Comment:               r.Comment,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}
	if v.Rejecters == nil {
		v.Rejecters = []int64{}
	}
	if r.Latitude != nil && r.Longitude != nil {
		v.Location = &LocationView{Lat: *r.Latitude, Lng: *r.Longitude}
	}
	return v
}

// ListOrdersQueryHandler reads order pages straight from the orders table.
// The actor's visibility becomes a WHERE clause, so totals and pages only
// ever count what the actor may see.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	visibility, err := services.VisibilityFor(query.Actor(), query.IncludeInactive())
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}

	scope := scopeOrders(h.db.WithContext(ctx).Table("orders"), visibility)
	if s := query.State(); s != nil {
		scope = scope.Where("state = ?", s.String())
	}

	var total int64
	if err = scope.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return ListOrdersQueryResponse{}, dberrs.Classify(err)
	}

	page := query.Page()
	rows := make([]orderRow, 0, page.Size())
	if err = scope.Session(&gorm.Session{}).
		Order("created_at DESC").
		Order("id DESC").
		Offset(page.Offset()).
		Limit(page.Size()).
		Find(&rows).Error; err != nil {
		return ListOrdersQueryResponse{}, dberrs.Classify(err)
	}

	items := make([]OrderView, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.view())
	}

	return ListOrdersQueryResponse{
		Items:        items,
		TotalResults: total,
		TotalPages:   page.TotalPages(total),
		CurrentPage:  page.Number(),
	}, nil
}

func scopeOrders(db *gorm.DB, v services.OrderVisibility) *gorm.DB {
	if v.ActiveOnly {
		db = db.Where("active")
	}
	if v.All {
		return db
	}

	var (
		clauses []string
		args    []any
	)
	party := func(column string, id any) {
		clauses = append(clauses, column+" = ?")
		args = append(args, id)
	}
	if v.ClientID != nil {
		party("client_id", v.ClientID.Int64())
	}
	if v.WorkerID != nil {
		party("worker_id", v.WorkerID.Int64())
	}
	if v.ProposedWorkerID != nil {
		party("proposed_worker_id", v.ProposedWorkerID.Int64())
	}
	if v.OrganizationID != nil {
		party("organization_id", v.OrganizationID.Int64())
	}
	if v.ProposedOrganizationID != nil {
		party("proposed_organization_id", v.ProposedOrganizationID.Int64())
	}
	if v.IncludeSearching {
		party("state", order.Searching.String())
	}

	if len(clauses) == 0 {
		return db.Where("FALSE")
	}
	return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
}
