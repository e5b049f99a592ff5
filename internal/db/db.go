package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"seodash/migrations"
)

// DB wraps a pgxpool connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// New creates a new database connection pool.
func New(ctx context.Context, connString string) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

func newMigrator(connString string) (*migrate.Migrate, error) {
	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	return m, nil
}

// RunMigrations runs all embedded SQL migrations.
func (d *DB) RunMigrations(connString string) error {
	m, err := newMigrator(connString)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// MigrationVersion reports the applied schema version and whether the last migration failed halfway.
func (d *DB) MigrationVersion(connString string) (uint, bool, error) {
	m, err := newMigrator(connString)
	if err != nil {
		return 0, false, err
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read migration version: %w", err)
	}
	return version, dirty, nil
}

// Close closes the connection pool.
func (d *DB) Close() {
	d.Pool.Close()
}

// SeedDevSurfaces inserts common footprint surfaces for development. Skips surfaces that already exist.
func (d *DB) SeedDevSurfaces(ctx context.Context) error {
	surfaces := []struct {
		name     string
		domain   string
		category string
	}{
		{"YouTube", "youtube.com", "video"},
		{"Wikipedia", "wikipedia.org", "reference"},
		{"LinkedIn", "linkedin.com", "social"},
		{"Reddit", "reddit.com", "community"},
		{"Quora", "quora.com", "community"},
		{"Amazon", "amazon.in", "marketplace"},
	}

	query := `
		INSERT INTO footprint_surfaces (name, domain, category, sort_order)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (domain) DO NOTHING
	`

	for i, s := range surfaces {
		if _, err := d.Pool.Exec(ctx, query, s.name, s.domain, s.category, i); err != nil {
			return fmt.Errorf("failed to seed surface %s: %w", s.domain, err)
		}
	}

	return nil
}
