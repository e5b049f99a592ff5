// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgxpool"

	"seodash/internal/db"
	"seodash/internal/models"
)

// Fixtures holds flat-file collections for a test. Nil slices are not written,
// so the collection is absent on disk.
type Fixtures struct {
	Clients        []models.Client
	Competitors    []models.Competitor
	KeywordAPI     []models.KeywordAPIRecord
	DomainKeywords []models.DomainKeywordRecord
	AIProfiles     []models.AIProfile
}

// WriteFixtures writes the fixtures into a fresh temporary directory and returns it.
func WriteFixtures(t *testing.T, f Fixtures) string {
	t.Helper()
	dir := t.TempDir()

	writeJSON(t, dir, "clients", f.Clients)
	writeJSON(t, dir, "competitors", f.Competitors)
	writeJSON(t, dir, "keyword_api", f.KeywordAPI)
	writeJSON(t, dir, "domain_keywords", f.DomainKeywords)
	writeJSON(t, dir, "ai_profiles", f.AIProfiles)

	return dir
}

// WriteRaw writes an arbitrary body as a collection file, for malformed-data tests.
func WriteRaw(t *testing.T, dir, collection, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, collection+".json"), []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", collection, err)
	}
}

func writeJSON[T any](t *testing.T, dir, collection string, rows []T) {
	t.Helper()
	if rows == nil {
		return
	}
	data, err := json.Marshal(rows)
	if err != nil {
		t.Fatalf("failed to encode %s: %v", collection, err)
	}
	WriteRaw(t, dir, collection, string(data))
}

// Pos returns a pointer to a SERP position.
func Pos(p int) *int {
	return &p
}

// Bool returns a pointer to a flag value.
func Bool(b bool) *bool {
	return &b
}

// TestDB creates a test database connection and returns a cleanup function.
// Uses TEST_DATABASE_URL environment variable or defaults to a test database.
func TestDB(t *testing.T) (*db.DB, func()) {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	// Run migrations
	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	cleanupTestData(ctx, database.Pool)
	cleanup := func() {
		cleanupTestData(ctx, database.Pool)
		database.Close()
	}

	return database, cleanup
}

// cleanupTestData removes all test data from the database.
func cleanupTestData(ctx context.Context, pool *pgxpool.Pool) {
	pool.Exec(ctx, "DELETE FROM query_executions")
	pool.Exec(ctx, "DELETE FROM footprint_surfaces")
	pool.Exec(ctx, "DELETE FROM app_branding")
}
