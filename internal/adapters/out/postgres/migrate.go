package postgres

import (
	"context"
	"fmt"

	"servicedesk/internal/adapters/out/postgres/accountrepo"
	"servicedesk/internal/adapters/out/postgres/notificationrepo"
	"servicedesk/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the tables of every repository.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&accountrepo.AccountDTO{},
		&orderrepo.OrderDTO{},
		&notificationrepo.NotificationDTO{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
