package ports

import (
	"context"

	"servicedesk/internal/core/domain/model/account"
	"servicedesk/internal/core/domain/model/kernel"
)

// AccountRepository reads the account projection the engine works with.
type AccountRepository interface {
	// Add persists a new account. Accounts are owned elsewhere; Add exists
	// for seeding.
	Add(ctx context.Context, aggregate *account.Account) error

	// Get retrieves an account by id.
	Get(ctx context.Context, id kernel.ID) (*account.Account, error)

	// FindCandidatePool returns active proposable accounts covering zone.
	// The result is a superset of the eligible candidates of any order in
	// that zone; the dispatcher applies the full rule.
	FindCandidatePool(ctx context.Context, zone kernel.Zone) ([]*account.Account, error)

	// ListActiveIDsByRoles returns the ids of active accounts holding one of roles.
	ListActiveIDsByRoles(ctx context.Context, roles []account.Role) ([]kernel.ID, error)
}
