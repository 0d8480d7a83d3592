package main

import (
	"servicedesk/internal/adapters/out/postgres"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}

		return withDB(cfg, logger, func(db *gorm.DB) error {
			if err := postgres.Migrate(c.Context(), db); err != nil {
				return err
			}
			logger.Info("Schema is up to date")
			return nil
		})
	},
}
