package queries

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"seodash/internal/models"
	"seodash/internal/store"
	"seodash/internal/testutil"
)

type mapCatalog map[string]models.QueryDefinition

func (c mapCatalog) Lookup(id string) (models.QueryDefinition, bool) {
	d, ok := c[id]
	return d, ok
}

// testCatalog registers every query type under its own id, plus one type without an aggregator.
func testCatalog() mapCatalog {
	c := mapCatalog{}
	for _, t := range RegisteredTypes() {
		c[t] = models.QueryDefinition{ID: t, Title: t, Status: models.QueryStatusActive, QueryType: t}
	}
	c["serp-features"] = models.QueryDefinition{ID: "serp-features", Title: "SERP Features", Status: models.QueryStatusPending, QueryType: "serp-features"}
	return c
}

type fakeSurfaces struct {
	surfaces []models.FootprintSurface
	err      error
}

func (f fakeSurfaces) FootprintSurfaces(ctx context.Context) ([]models.FootprintSurface, error) {
	return f.surfaces, f.err
}

// countingSource records every read so tests can assert no data was touched.
type countingSource struct {
	Source
	mu    sync.Mutex
	reads int
}

func (c *countingSource) hit() {
	c.mu.Lock()
	c.reads++
	c.mu.Unlock()
}

func (c *countingSource) Clients(ctx context.Context) ([]models.Client, error) {
	c.hit()
	return c.Source.Clients(ctx)
}

func (c *countingSource) Competitors(ctx context.Context, code string) ([]models.Competitor, error) {
	c.hit()
	return c.Source.Competitors(ctx, code)
}

func (c *countingSource) KeywordAPI(ctx context.Context, code string) ([]models.KeywordAPIRecord, error) {
	c.hit()
	return c.Source.KeywordAPI(ctx, code)
}

func (c *countingSource) DomainKeywords(ctx context.Context, code string) ([]models.DomainKeywordRecord, error) {
	c.hit()
	return c.Source.DomainKeywords(ctx, code)
}

func (c *countingSource) AIProfile(ctx context.Context, code string) (*models.AIProfile, error) {
	c.hit()
	return c.Source.AIProfile(ctx, code)
}

var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func newTestEngine(t *testing.T, f testutil.Fixtures, opts ...Option) *Engine {
	t.Helper()
	return newEngineWith(t, store.New(testutil.WriteFixtures(t, f)), nil, opts...)
}

func storeAt(dir string) Source {
	return store.New(dir)
}

func newEngineWith(t *testing.T, src Source, settings SettingsSource, opts ...Option) *Engine {
	t.Helper()
	loader := NewLoader(src, settings, zerolog.Nop())
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewEngine(testCatalog(), loader, zerolog.Nop(), opts...)
}

func mustExecute(t *testing.T, e *Engine, clientCode, queryID string) *models.QueryResult {
	t.Helper()
	res, err := e.Execute(context.Background(), clientCode, queryID)
	if err != nil {
		t.Fatalf("Execute(%q, %q) error = %v", clientCode, queryID, err)
	}
	return res
}

func mustRun(t *testing.T, e *Engine, clientCode, queryType string, cfg models.QueryConfig) any {
	t.Helper()
	res, err := e.Run(context.Background(), clientCode, models.QueryDefinition{QueryType: queryType, Config: cfg})
	if err != nil {
		t.Fatalf("Run(%q, %q) error = %v", clientCode, queryType, err)
	}
	return res.Data
}

func acmeClient() models.Client {
	return models.Client{Code: "acme", Name: "Acme", Domain: "https://www.Acme.com/", Domains: []string{"acme.in"}}
}

// acmeCompetitors: one Self row, a main competitor, a plain competitor and an inactive one.
func acmeCompetitors() []models.Competitor {
	return []models.Competitor{
		{ClientCode: "acme", Domain: "acmestore.com", CompetitionType: models.CompetitionSelf},
		{ClientCode: "acme", Domain: "www.rival.com", Name: "Rival", CompetitionType: models.CompetitionMain, BrandNames: []string{"rivalry"}, Importance: 0.9},
		{ClientCode: "acme", Domain: "other.com", CompetitionType: "Competitor", Importance: 0.4},
		{ClientCode: "acme", Domain: "old.com", CompetitionType: models.CompetitionMain, Active: testutil.Bool(false), Importance: 0.1},
	}
}

func serp(domain, keyword, location string, position *int, volume int64) models.DomainKeywordRecord {
	return models.DomainKeywordRecord{ClientCode: "acme", Domain: domain, Keyword: keyword, Location: location, Position: position, SearchVolume: volume}
}

func tracked(keyword, location string, volume int64) models.KeywordAPIRecord {
	return models.KeywordAPIRecord{ClientCode: "acme", Keyword: keyword, Location: location, SearchVolume: volume}
}

func assertErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("error = %v, want %v", err, target)
	}
}
