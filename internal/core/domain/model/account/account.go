package account

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/pkg/errs"
	"servicedesk/internal/pkg/guard"
)

var (
	ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount constructor")
	ErrNameIsRequired          = errs.NewValueIsRequiredError("name")
)

// Account is the projection of a user account the order engine consumes:
// identity, role, activity, coverage zones and supervising organization.
type Account struct {
	id           kernel.ID
	name         string
	email        string
	role         Role
	active       bool
	zones        []kernel.Zone
	supervisorID *kernel.ID
	guard        guard.ConstructorGuard
}

// NewAccount creates an active account.
func NewAccount(
	id kernel.ID,
	name string,
	email string,
	role Role,
	zones []kernel.Zone,
	supervisorID *kernel.ID,
) (*Account, error) {
	return RestoreAccount(id, name, email, role, true, zones, supervisorID)
}

// RestoreAccount rebuilds an account from persistence.
func RestoreAccount(
	id kernel.ID,
	name string,
	email string,
	role Role,
	active bool,
	zones []kernel.Zone,
	supervisorID *kernel.ID,
) (*Account, error) {
	a := &Account{
		email:  strings.TrimSpace(email),
		active: active,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setRole(role),
		a.setZones(zones),
	); err != nil {
		return nil, err
	}

	if err := a.setSupervisor(supervisorID); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *Account) Validate() error {
	if a == nil {
		return ErrAccountIsNotConstructed
	}
	return a.guard.Validate(ErrAccountIsNotConstructed)
}

func (a *Account) IsEqual(other *Account) bool {
	return other != nil && a.id == other.id
}

func (a *Account) ID() kernel.ID {
	return a.id
}

func (a *Account) Name() string {
	return a.name
}

func (a *Account) Email() string {
	return a.email
}

func (a *Account) Role() Role {
	return a.role
}

func (a *Account) IsActive() bool {
	return a.active
}

func (a *Account) Zones() []kernel.Zone {
	return slices.Clone(a.zones)
}

func (a *Account) SupervisorID() *kernel.ID {
	return a.supervisorID
}

// Actor returns the account acting under its own role.
func (a *Account) Actor() Actor {
	return Actor{id: a.id, role: a.role, guard: guard.NewConstructorGuard()}
}

func (a *Account) Activate() {
	a.active = true
}

func (a *Account) Deactivate() {
	a.active = false
}

// CoversZone reports whether zone is one of the account's coverage zones.
func (a *Account) CoversZone(zone kernel.Zone) bool {
	return slices.ContainsFunc(a.zones, zone.IsEqual)
}

// IsIndependentWorker reports whether the account is a worker without a
// supervising organization.
func (a *Account) IsIndependentWorker() bool {
	return a.role == RoleWorker && a.supervisorID == nil
}

// IsProposable reports whether the role can receive a proposal at all:
// independent workers and organization admins.
func (a *Account) IsProposable() bool {
	switch a.role {
	case RoleWorker:
		return a.supervisorID == nil
	case RoleOrganizationAdmin:
		return true
	case RoleClient, RolePlatformAdmin, RoleUnknown:
		return false
	}
	return false
}

// Supervises reports whether worker belongs to this organization admin.
func (a *Account) Supervises(worker *Account) bool {
	return a.role == RoleOrganizationAdmin &&
		worker != nil &&
		worker.role == RoleWorker &&
		kernel.SameID(worker.supervisorID, a.id)
}

func (a *Account) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Account) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	a.name = name
	return nil
}

func (a *Account) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}

func (a *Account) setZones(zones []kernel.Zone) error {
	for _, z := range zones {
		if err := z.Validate(); err != nil {
			return err
		}
	}
	a.zones = slices.Clone(zones)
	return nil
}

func (a *Account) setSupervisor(supervisorID *kernel.ID) error {
	if supervisorID == nil {
		return nil
	}
	if a.role != RoleWorker {
		return errs.NewValueIsInvalidErrorWithCause(
			"supervisor",
			fmt.Errorf("%s accounts cannot have a supervising organization", a.role),
		)
	}
	if err := supervisorID.Validate(); err != nil {
		return err
	}
	id := *supervisorID
	a.supervisorID = &id
	return nil
}
