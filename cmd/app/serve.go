package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"servicedesk/cmd"
	httpadapter "servicedesk/internal/adapters/in/http"
	"servicedesk/internal/adapters/out/postgres"
	"servicedesk/internal/pkg/telemetry"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the schema, then start the HTTP server and background jobs",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, logger, err := setup()
		if err != nil {
			return err
		}

		shutdownTracing, err := telemetry.Setup(ctx, telemetry.Name, cfg.Telemetry.OTLPEndpoint)
		if err != nil {
			return fmt.Errorf("setup tracing: %w", err)
		}
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				logger.Warn("Flushing traces failed", "error", err)
			}
		}()

		return withDB(cfg, logger, func(db *gorm.DB) error {
			if err := postgres.Migrate(ctx, db); err != nil {
				return fmt.Errorf("migration error: %w", err)
			}

			doc, err := httpadapter.LoadOpenAPI(ctx)
			if err != nil {
				return err
			}
			if err := httpadapter.RegisterSwagger(doc); err != nil {
				return err
			}

			root := cmd.NewCompositionRoot(cfg, db, logger)
			e, err := root.CreateRouter(doc)
			if err != nil {
				return fmt.Errorf("build router: %w", err)
			}

			jobManager := root.CreateJobManager()
			if err := jobManager.StartAll(ctx); err != nil {
				return err
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				logger.Info("HTTP server listening", "addr", cfg.HTTP.ListenAddr, "env", cfg.Env)
				if err := e.Start(cfg.HTTP.ListenAddr); !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server error: %w", err)
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				logger.Info("Shutting down")

				httpCtx, cancelHTTP := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancelHTTP()
				httpErr := e.Shutdown(httpCtx)

				jobManager.StopAll()

				drainCtx, cancelDrain := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancelDrain()
				return errors.Join(httpErr, root.Close(drainCtx))
			})

			return g.Wait()
		})
	},
}
