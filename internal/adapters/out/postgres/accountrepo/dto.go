// Package accountrepo maps the account projection to the accounts table.
package accountrepo

import (
	"servicedesk/internal/core/domain/model/account"
	"servicedesk/internal/core/domain/model/kernel"

	"github.com/lib/pq"
)

// AccountDTO is the row of an account. Zones written here are normalized,
// but rows also come from the account owner, so lookups lower-case the stored
// tags before comparing.
type AccountDTO struct {
	ID            int64          `gorm:"primaryKey;autoIncrement:false"`
	Name          string         `gorm:"type:varchar(255);not null"`
	Email         string         `gorm:"type:varchar(255)"`
	Role          string         `gorm:"type:varchar(32);not null;index"`
	Active        bool           `gorm:"not null;default:true"`
	CoverageZones pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	SupervisorID  *int64         `gorm:"index"`
}

func (AccountDTO) TableName() string {
	return "accounts"
}

func fromDomain(a *account.Account) AccountDTO {
	zones := kernel.ZoneStrings(a.Zones())
	if zones == nil {
		zones = []string{}
	}

	return AccountDTO{
		ID:            a.ID().Int64(),
		Name:          a.Name(),
		Email:         a.Email(),
		Role:          a.Role().String(),
		Active:        a.IsActive(),
		CoverageZones: pq.StringArray(zones),
		SupervisorID:  kernel.Int64Ptr(a.SupervisorID()),
	}
}

func toDomain(dto AccountDTO) (*account.Account, error) {
	role, err := account.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}

	zones, err := kernel.NewZones(dto.CoverageZones)
	if err != nil {
		return nil, err
	}

	return account.RestoreAccount(
		kernel.ID(dto.ID),
		dto.Name,
		dto.Email,
		role,
		dto.Active,
		zones,
		kernel.IDPtr(dto.SupervisorID),
	)
}
