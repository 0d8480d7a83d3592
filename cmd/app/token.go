package main

import (
	"fmt"
	"strconv"
	"time"

	httpadapter "servicedesk/internal/adapters/in/http"
	"servicedesk/internal/adapters/out/postgres"
	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/pkg/errs"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var tokenTTL time.Duration

var tokenCmd = &cobra.Command{
	Use:   "token ACCOUNT_ID",
	Short: "Print a bearer token for an active account",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		raw, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("account id: %w", err)
		}
		id := kernel.ID(raw)
		if err := id.Validate(); err != nil {
			return err
		}

		cfg, logger, err := setup()
		if err != nil {
			return err
		}

		return withDB(cfg, logger, func(db *gorm.DB) error {
			acc, err := postgres.NewGormUnitOfWorkFactory(db).Create().AccountRepository().Get(c.Context(), id)
			if err != nil {
				return err
			}
			if !acc.IsActive() {
				return errs.NewForbiddenError("issue token for inactive account")
			}

			token, err := httpadapter.IssueToken([]byte(cfg.Auth.JWTSecret), cfg.Auth.Issuer, id, tokenTTL)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.OutOrStdout(), token)
			return err
		})
	},
}

func init() {
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
}
