package order

import (
	"errors"
	"strings"
	"time"

	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/pkg/errs"
	"servicedesk/internal/pkg/guard"
)

var (
	ErrDetailsIsNotConstructed = errs.NewValueIsRequiredError("details must be created via NewDetails")
	ErrDescriptionIsRequired   = errs.NewValueIsRequiredError("description")
)

// Address is where the service takes place. All parts are free text.
type Address struct {
	Street     string
	Number     string
	City       string
	Province   string
	PostalCode string
}

func (a Address) normalize() Address {
	return Address{
		Street:     strings.TrimSpace(a.Street),
		Number:     strings.TrimSpace(a.Number),
		City:       strings.TrimSpace(a.City),
		Province:   strings.TrimSpace(a.Province),
		PostalCode: strings.TrimSpace(a.PostalCode),
	}
}

// Details is what the client asks for and where.
type Details struct { //nolint:recvcheck //using for validation
	description string
	address     Address
	location    *kernel.GeoPoint
	zone        kernel.Zone
	guard       guard.ConstructorGuard
}

func NewDetails(description string, address Address, location *kernel.GeoPoint, zone kernel.Zone) (Details, error) {
	d := Details{
		address: address.normalize(),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setDescription(description),
		d.setLocation(location),
		d.setZone(zone),
	); err != nil {
		return Details{}, err
	}

	return d, nil
}

func (d Details) Validate() error {
	return d.guard.Validate(ErrDetailsIsNotConstructed)
}

func (d Details) Description() string {
	return d.description
}

func (d Details) Address() Address {
	return d.address
}

// Location returns the optional coordinate of the address.
func (d Details) Location() *kernel.GeoPoint {
	if d.location == nil {
		return nil
	}
	p := *d.location
	return &p
}

func (d Details) Zone() kernel.Zone {
	return d.zone
}

func (d *Details) setDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return ErrDescriptionIsRequired
	}
	d.description = description
	return nil
}

func (d *Details) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	p := *location
	d.location = &p
	return nil
}

func (d *Details) setZone(zone kernel.Zone) error {
	if err := zone.Validate(); err != nil {
		return err
	}
	d.zone = zone
	return nil
}

// WorkNotes is a partial update of the fields the assigned parties keep while
// working on an order. Nil fields are left untouched.
type WorkNotes struct {
	TechnicianNotes       *string
	ScheduledVisitAt      *time.Time
	EstimatedResolutionAt *time.Time
}

// IsEmpty reports whether the update carries no field.
func (n WorkNotes) IsEmpty() bool {
	return n.TechnicianNotes == nil && n.ScheduledVisitAt == nil && n.EstimatedResolutionAt == nil
}
