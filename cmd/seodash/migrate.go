package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedSurfaces bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations to the settings store",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.HasDatabase() {
			return fmt.Errorf("DATABASE_URL is not set")
		}

		ctx := cmd.Context()
		database, err := openDB(ctx, true)
		if err != nil {
			return err
		}
		defer database.Close()

		schemaVersion, dirty, err := database.MigrationVersion(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		fmt.Printf("Schema version: %d (dirty: %v)\n", schemaVersion, dirty)

		if seedSurfaces {
			if err := database.SeedDevSurfaces(ctx); err != nil {
				return fmt.Errorf("seeding footprint surfaces: %w", err)
			}
			fmt.Println("Seeded default footprint surfaces")
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&seedSurfaces, "seed", false, "Insert the default footprint surfaces")
}
