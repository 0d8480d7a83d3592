package account

import (
	"fmt"
	"strings"

	"servicedesk/internal/pkg/errs"
)

// Role is the closed set of account roles. Every authorization gate switches
// over all values, so adding a role forces a review of each gate.
type Role int

const (
	// RoleUnknown is the zero value and is never valid.
	RoleUnknown Role = iota

	// RoleClient requests service and owns orders.
	RoleClient

	// RoleWorker performs the service. A worker with a supervising
	// organization only receives orders through that organization.
	RoleWorker

	// RoleOrganizationAdmin runs a technician-service organization and
	// sub-assigns orders to its workers.
	RoleOrganizationAdmin

	// RolePlatformAdmin has unrestricted visibility and override rights.
	RolePlatformAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:           "unknown",
		RoleClient:            "client",
		RoleWorker:            "worker",
		RoleOrganizationAdmin: "organization_admin",
		RolePlatformAdmin:     "platform_admin",
	}
}

// AllRoles lists the valid roles.
func AllRoles() []Role {
	return []Role{RoleClient, RoleWorker, RoleOrganizationAdmin, RolePlatformAdmin}
}

// ParseRole parses the wire name of a role.
func ParseRole(s string) (Role, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, r := range AllRoles() {
		if r.String() == needle {
			return r, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

func (r Role) Validate() error {
	switch r {
	case RoleClient, RoleWorker, RoleOrganizationAdmin, RolePlatformAdmin:
		return nil
	case RoleUnknown:
	}
	return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
}

// IsPrivileged reports whether the role sees and manages inactive orders.
func (r Role) IsPrivileged() bool {
	switch r {
	case RolePlatformAdmin:
		return true
	case RoleClient, RoleWorker, RoleOrganizationAdmin, RoleUnknown:
		return false
	}
	return false
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
