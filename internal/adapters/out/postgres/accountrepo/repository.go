package accountrepo

import (
	"context"
	"errors"

	"servicedesk/internal/adapters/out/postgres/dberrs"
	"servicedesk/internal/core/domain/model/account"
	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAccountRepository implements AccountRepository using GORM.
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GORM account repository.
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// Add saves a new account to the database.
func (r *GormAccountRepository) Add(ctx context.Context, aggregate *account.Account) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberrs.Classify(err)
	}
	return nil
}

// Get retrieves an account by ID.
func (r *GormAccountRepository) Get(ctx context.Context, id kernel.ID) (*account.Account, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AccountDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("account", id.String())
		}
		return nil, dberrs.Classify(err)
	}

	return toDomain(dto)
}

// FindCandidatePool returns the active independent workers and organization
// admins covering zone, ordered by id.
//
// Example:
//
//	pool, err := repo.FindCandidatePool(ctx, o.Details().Zone())
//	if err != nil {
//		return err
//	}
//	chosen, err := dispatcher.Dispatch(o, pool)
func (r *GormAccountRepository) FindCandidatePool(ctx context.Context, zone kernel.Zone) ([]*account.Account, error) {
	if err := zone.Validate(); err != nil {
		return nil, err
	}

	var dtos []AccountDTO
	if err := r.db.WithContext(ctx).
		Where("active").
		Where(
			`EXISTS (SELECT 1 FROM unnest(coverage_zones) AS z
				WHERE lower(regexp_replace(btrim(z), '\s+', ' ', 'g')) = ?)`,
			zone.String(),
		).
		Where(
			"(role = ? AND supervisor_id IS NULL) OR role = ?",
			account.RoleWorker.String(),
			account.RoleOrganizationAdmin.String(),
		).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, dberrs.Classify(err)
	}

	accounts := make([]*account.Account, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}

	return accounts, nil
}

// ListActiveIDsByRoles returns the ids of active accounts holding any of roles.
func (r *GormAccountRepository) ListActiveIDsByRoles(ctx context.Context, roles []account.Role) ([]kernel.ID, error) {
	if len(roles) == 0 {
		return []kernel.ID{}, nil
	}

	names := make([]string, 0, len(roles))
	for _, role := range roles {
		if err := role.Validate(); err != nil {
			return nil, err
		}
		names = append(names, role.String())
	}

	var raw []int64
	if err := r.db.WithContext(ctx).
		Model(&AccountDTO{}).
		Where("active AND role IN ?", names).
		Order("id").
		Pluck("id", &raw).Error; err != nil {
		return nil, dberrs.Classify(err)
	}

	ids := make([]kernel.ID, 0, len(raw))
	for _, id := range raw {
		ids = append(ids, kernel.ID(id))
	}
	return ids, nil
}
