package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"seodash/internal/config"
	"seodash/internal/db"
	"seodash/internal/models"
	"seodash/internal/validation"
)

// settingsWriter is the subset of the settings store the admin commands use.
type settingsWriter interface {
	GetAppBranding(ctx context.Context) (*models.AppBranding, error)
	UpsertAppBranding(ctx context.Context, b *models.AppBranding) error
	CreateFootprintSurface(ctx context.Context, s *models.FootprintSurface) error
	ListFootprintSurfaces(ctx context.Context) ([]models.FootprintSurface, error)
}

// brandingUpdate holds the branding flags; empty fields keep their stored value.
type brandingUpdate struct {
	SiteTitle    string
	SiteTagline  string
	LogoURL      string
	PrimaryColor string
}

// applyBranding merges an update into the stored branding, seeding from config
// when no row exists yet.
func applyBranding(ctx context.Context, w settingsWriter, c *config.Config, u brandingUpdate) (*models.AppBranding, error) {
	b, err := w.GetAppBranding(ctx)
	if errors.Is(err, db.ErrBrandingNotFound) {
		b = &models.AppBranding{SiteTitle: c.SiteTitle, SiteTagline: c.SiteTagline, LogoURL: c.SiteLogoURL}
	} else if err != nil {
		return nil, fmt.Errorf("loading branding: %w", err)
	}

	if u.SiteTitle != "" {
		b.SiteTitle = u.SiteTitle
	}
	if u.SiteTagline != "" {
		b.SiteTagline = u.SiteTagline
	}
	if u.LogoURL != "" {
		if valid, msg := validation.ValidateURL(u.LogoURL); !valid {
			return nil, fmt.Errorf("logo url: %s", msg)
		}
		b.LogoURL = u.LogoURL
	}
	if u.PrimaryColor != "" {
		b.PrimaryColor = u.PrimaryColor
	}
	if strings.TrimSpace(b.SiteTitle) == "" {
		return nil, errors.New("site title is required")
	}

	if err := w.UpsertAppBranding(ctx, b); err != nil {
		return nil, fmt.Errorf("saving branding: %w", err)
	}
	return b, nil
}

// addSurface validates and stores a new footprint surface. The domain is stored normalized.
func addSurface(ctx context.Context, w settingsWriter, s models.FootprintSurface) (*models.FootprintSurface, error) {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return nil, errors.New("surface name is required")
	}
	s.Domain = validation.NormalizeDomain(s.Domain)
	if s.Domain == "" {
		return nil, errors.New("surface domain is required")
	}
	if s.Category == "" {
		s.Category = "other"
	}

	if err := w.CreateFootprintSurface(ctx, &s); err != nil {
		if errors.Is(err, db.ErrDuplicateSurface) {
			return nil, fmt.Errorf("%s: %w", s.Domain, err)
		}
		return nil, fmt.Errorf("saving surface: %w", err)
	}
	return &s, nil
}

var (
	branding brandingUpdate

	surfaceCategory  string
	surfaceSortOrder int
	surfaceInactive  bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage dashboard branding and footprint surfaces",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		if !cfg.HasDatabase() {
			return fmt.Errorf("DATABASE_URL is not set")
		}
		return nil
	},
}

var brandingCmd = &cobra.Command{
	Use:   "branding",
	Short: "Update the dashboard branding",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		database, err := openDB(ctx, true)
		if err != nil {
			return err
		}
		defer database.Close()

		b, err := applyBranding(ctx, database, cfg, branding)
		if err != nil {
			return err
		}
		fmt.Printf("Branding updated: %s (%s)\n", b.SiteTitle, b.UpdatedAt.Format("2006-01-02 15:04:05"))
		return nil
	},
}

var surfaceCmd = &cobra.Command{
	Use:   "surface",
	Short: "Manage footprint surfaces",
}

var surfaceAddCmd = &cobra.Command{
	Use:   "add <name> <domain>",
	Short: "Add a footprint surface",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		database, err := openDB(ctx, true)
		if err != nil {
			return err
		}
		defer database.Close()

		s, err := addSurface(ctx, database, models.FootprintSurface{
			Name:      args[0],
			Domain:    args[1],
			Category:  surfaceCategory,
			SortOrder: surfaceSortOrder,
			Active:    !surfaceInactive,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Added surface %s (%s) id %s\n", s.Name, s.Domain, s.ID)
		return nil
	},
}

var surfaceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List active footprint surfaces",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		database, err := openDB(ctx, false)
		if err != nil {
			return err
		}
		defer database.Close()

		surfaces, err := database.ListFootprintSurfaces(ctx)
		if err != nil {
			return err
		}
		for _, s := range surfaces {
			fmt.Printf("%4d  %-20s %-24s %s\n", s.SortOrder, s.Name, s.Domain, s.Category)
		}
		return nil
	},
}

func init() {
	brandingCmd.Flags().StringVar(&branding.SiteTitle, "title", "", "Site title")
	brandingCmd.Flags().StringVar(&branding.SiteTagline, "tagline", "", "Site tagline")
	brandingCmd.Flags().StringVar(&branding.LogoURL, "logo-url", "", "Logo URL (http or https)")
	brandingCmd.Flags().StringVar(&branding.PrimaryColor, "color", "", "Primary color")

	surfaceAddCmd.Flags().StringVar(&surfaceCategory, "category", "", "Surface category (default \"other\")")
	surfaceAddCmd.Flags().IntVar(&surfaceSortOrder, "sort", 0, "Display order")
	surfaceAddCmd.Flags().BoolVar(&surfaceInactive, "inactive", false, "Create the surface disabled")

	surfaceCmd.AddCommand(surfaceAddCmd, surfaceListCmd)
	settingsCmd.AddCommand(brandingCmd, surfaceCmd)
	rootCmd.AddCommand(settingsCmd)
}
