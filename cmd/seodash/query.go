package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"seodash/internal/models"
	"seodash/internal/queries"
)

var (
	queryType     string
	queryLimit    int
	queryLocation string
)

var queryCmd = &cobra.Command{
	Use:   "query <client-code> [query-id]",
	Short: "Execute a query and print the result envelope",
	Long:  "Executes a catalog query by id, or an inline query when --type is given, and prints the JSON result.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		database, err := openDB(ctx, false)
		if err != nil {
			return err
		}
		if database != nil {
			defer database.Close()
		}

		engine, _, _, err := newEngine(guardedSettings(database))
		if err != nil {
			return err
		}

		var result *models.QueryResult
		switch {
		case queryType != "":
			result, err = engine.Run(ctx, args[0], models.QueryDefinition{
				QueryType: queryType,
				Config:    models.QueryConfig{Limit: queryLimit, Location: queryLocation},
			})
		case len(args) == 2:
			result, err = engine.Execute(ctx, args[0], args[1])
		default:
			return fmt.Errorf("either a query id or --type is required")
		}
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		_, err = fmt.Fprintln(os.Stdout, string(out))
		return err
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the query catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, catalog, err := newEngine(nil)
		if err != nil {
			return err
		}

		implemented := make(map[string]bool)
		for _, t := range queries.RegisteredTypes() {
			implemented[t] = true
		}

		for _, q := range catalog.All() {
			mark := " "
			if !implemented[q.QueryType] {
				mark = "*"
			}
			fmt.Printf("%s %-28s %-28s %-8s %s\n", mark, q.ID, q.QueryType, q.Status, q.Title)
		}
		fmt.Println("\n* no aggregator registered; executes as a placeholder")
		return nil
	},
}

func init() {
	queryCmd.Flags().StringVarP(&queryType, "type", "t", "", "Run an inline query of this type instead of a catalog entry")
	queryCmd.Flags().IntVarP(&queryLimit, "limit", "l", 0, "Row limit for an inline query")
	queryCmd.Flags().StringVar(&queryLocation, "location", "", "Location filter for an inline query (india or global)")
}
