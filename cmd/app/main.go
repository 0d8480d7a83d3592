package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"servicedesk/cmd"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:          "servicedesk",
	Short:        "Service desk for on-site technical work orders",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, tokenCmd)
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger. It also sets
// GOMAXPROCS to the container CPU quota.
func setup() (cmd.Config, *slog.Logger, error) {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		return cmd.Config{}, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := cmd.NewLogger(cfg.Log, os.Stderr)
	if err != nil {
		return cmd.Config{}, nil, err
	}
	slog.SetDefault(logger)

	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	})); err != nil {
		logger.Warn("couldn't set automaxprocs", "error", err)
	}

	return cfg, logger, nil
}

func withDB(cfg cmd.Config, logger *slog.Logger, fn func(db *gorm.DB) error) error {
	db, err := cmd.OpenDB(cfg.DB)
	if err != nil {
		return err
	}
	defer func() {
		if err := cmd.CloseDB(db); err != nil {
			logger.Warn("Closing database failed", "error", err)
		}
	}()

	return fn(db)
}
