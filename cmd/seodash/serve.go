package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"seodash/internal/jobs"
	"seodash/internal/metrics"
	"seodash/internal/queries"
	"seodash/internal/server"
	"seodash/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		database, err := openDB(ctx, true)
		if err != nil {
			return err
		}

		settings := guardedSettings(database)

		deps := server.Dependencies{}
		if database != nil {
			defer database.Close()

			if cfg.IsDev() {
				if err := database.SeedDevSurfaces(ctx); err != nil {
					logger.Warn().Err(err).Msg("failed to seed footprint surfaces")
				}
			}

			metrics.Init(database, logger)
			deps.Settings = settings
			deps.Executions = database
			deps.Database = database.Pool
		} else {
			logger.Info().Msg("DATABASE_URL not set; settings store and execution log are disabled")
			metrics.Init(nil, logger)
		}
		defer metrics.Flush()

		engine, loader, catalog, err := newEngine(settings, queries.WithObserver(metrics.RecordQueryExecution))
		if err != nil {
			return err
		}
		deps.Engine = engine
		deps.Catalog = catalog
		deps.Clients = loader

		monitor := jobs.NewCollectionMonitor(store.New(cfg.DataDir), cfg.MonitorInterval, cfg.CollectionMaxAge, logger)
		go monitor.Start(ctx)

		srv := server.New(cfg, logger)
		srv.RegisterRoutes(deps)

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Info().Msg("shutting down server")
		if err := srv.Shutdown(); err != nil {
			return err
		}
		logger.Info().Msg("server exited")
		return nil
	},
}
