package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"seodash/internal/models"
)

// GetAppBranding retrieves the dashboard branding row.
func (d *DB) GetAppBranding(ctx context.Context) (*models.AppBranding, error) {
	query := `
		SELECT site_title, site_tagline, logo_url, primary_color, updated_at
		FROM app_branding WHERE id = 1
	`

	var b models.AppBranding
	err := d.Pool.QueryRow(ctx, query).Scan(
		&b.SiteTitle, &b.SiteTagline, &b.LogoURL, &b.PrimaryColor, &b.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBrandingNotFound
	}
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// UpsertAppBranding creates or replaces the dashboard branding row.
func (d *DB) UpsertAppBranding(ctx context.Context, b *models.AppBranding) error {
	query := `
		INSERT INTO app_branding (id, site_title, site_tagline, logo_url, primary_color)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			site_title = EXCLUDED.site_title,
			site_tagline = EXCLUDED.site_tagline,
			logo_url = EXCLUDED.logo_url,
			primary_color = EXCLUDED.primary_color,
			updated_at = NOW()
		RETURNING updated_at
	`
	return d.Pool.QueryRow(ctx, query, b.SiteTitle, b.SiteTagline, b.LogoURL, b.PrimaryColor).Scan(&b.UpdatedAt)
}

// CreateFootprintSurface adds a footprint surface.
func (d *DB) CreateFootprintSurface(ctx context.Context, s *models.FootprintSurface) error {
	query := `
		INSERT INTO footprint_surfaces (name, domain, category, sort_order, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := d.Pool.QueryRow(ctx, query, s.Name, s.Domain, s.Category, s.SortOrder, s.Active).Scan(&s.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateSurface
		}
		return err
	}
	return nil
}

// ListFootprintSurfaces retrieves the active footprint surfaces in display order.
func (d *DB) ListFootprintSurfaces(ctx context.Context) ([]models.FootprintSurface, error) {
	query := `
		SELECT id, name, domain, category, sort_order, active
		FROM footprint_surfaces
		WHERE active = TRUE
		ORDER BY sort_order ASC, name ASC
	`

	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var surfaces []models.FootprintSurface
	for rows.Next() {
		var s models.FootprintSurface
		if err := rows.Scan(&s.ID, &s.Name, &s.Domain, &s.Category, &s.SortOrder, &s.Active); err != nil {
			return nil, err
		}
		surfaces = append(surfaces, s)
	}

	return surfaces, rows.Err()
}
