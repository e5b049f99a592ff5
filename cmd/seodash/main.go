package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"seodash/internal/config"
	"seodash/internal/db"
	"seodash/internal/logging"
	"seodash/internal/queries"
	"seodash/internal/store"
)

var version = "dev"

var (
	verbose     bool
	catalogPath string
	cfg         *config.Config
	logger      zerolog.Logger
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "seodash",
	Short:   "Competitive SEO dashboard query engine",
	Long:    "seodash serves analytical views over keyword rankings and search volumes for each client.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if catalogPath != "" {
			cfg.CatalogFile = catalogPath
		}

		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		logger = logging.New(level, cfg.IsDev())
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&catalogPath, "catalog", "c", "", "Path to query catalog file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(migrateCmd)
}

// openDB connects to the settings store when one is configured. It returns nil
// without error when DATABASE_URL is empty.
func openDB(ctx context.Context, migrateSchema bool) (*db.DB, error) {
	if !cfg.HasDatabase() {
		return nil, nil
	}

	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if migrateSchema {
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			database.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
		logger.Info().Msg("migrations completed successfully")
	}
	return database, nil
}

// guardedSettings wraps the settings store in its circuit breaker, or returns nil
// when no database is configured.
func guardedSettings(database *db.DB) *db.GuardedSettings {
	if database == nil {
		return nil
	}
	return db.NewGuardedSettings(database, logger)
}

// newEngine builds the loader and engine over the configured data directory.
// settings may be nil.
func newEngine(settings *db.GuardedSettings, opts ...queries.Option) (*queries.Engine, *queries.Loader, *config.Catalog, error) {
	catalog, err := config.LoadCatalog(cfg.CatalogFile)
	if err != nil {
		return nil, nil, nil, err
	}

	var src queries.SettingsSource
	if settings != nil {
		src = settings
	}

	loader := queries.NewLoader(store.New(cfg.DataDir), src, logger)
	return queries.NewEngine(catalog, loader, logger, opts...), loader, catalog, nil
}
