package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeCollection(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+".json"), []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestClients(t *testing.T) {
	dir := t.TempDir()
	writeCollection(t, dir, CollectionClients, `[
		{"code": "acme", "name": "Acme", "domain": "acme.com", "domains": ["acme.in"]},
		{"code": "globex", "name": "Globex", "domain": "globex.com"}
	]`)

	clients, err := New(dir).Clients(context.Background())
	if err != nil {
		t.Fatalf("Clients() error = %v", err)
	}
	if len(clients) != 2 {
		t.Fatalf("Clients() returned %d rows, want 2", len(clients))
	}
	if got := clients[0].OwnedDomains(); len(got) != 2 || got[1] != "acme.in" {
		t.Errorf("OwnedDomains() = %v, want [acme.com acme.in]", got)
	}
}

func TestFilterByClientCode(t *testing.T) {
	dir := t.TempDir()
	writeCollection(t, dir, CollectionDomainKeywords, `[
		{"clientCode": "acme", "domain": "acme.com", "keyword": "widgets", "location": "india", "position": 3, "searchVolume": 1000},
		{"clientCode": "ACME", "domain": "rival.com", "keyword": "widgets", "location": "india", "position": null, "searchVolume": 1000},
		{"clientCode": "globex", "domain": "globex.com", "keyword": "gadgets", "location": "global", "position": 1, "searchVolume": 50}
	]`)

	rows, err := New(dir).DomainKeywords(context.Background(), "acme")
	if err != nil {
		t.Fatalf("DomainKeywords() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("DomainKeywords() returned %d rows, want 2", len(rows))
	}
	if rows[0].Position == nil || *rows[0].Position != 3 {
		t.Errorf("first position = %v, want 3", rows[0].Position)
	}
	if rows[1].Position != nil {
		t.Errorf("null position decoded as %v, want nil", *rows[1].Position)
	}
}

func TestAIProfile(t *testing.T) {
	dir := t.TempDir()
	writeCollection(t, dir, CollectionAIProfiles, `[
		{"clientCode": "acme", "brandTerms": ["acme"], "termDictionary": {"price": "Include | Buy"}}
	]`)
	s := New(dir)

	p, err := s.AIProfile(context.Background(), "acme")
	if err != nil {
		t.Fatalf("AIProfile() error = %v", err)
	}
	if p == nil || len(p.BrandTerms) != 1 || p.TermDictionary["price"] != "Include | Buy" {
		t.Errorf("AIProfile() = %+v", p)
	}

	none, err := s.AIProfile(context.Background(), "globex")
	if err != nil {
		t.Fatalf("AIProfile(globex) error = %v", err)
	}
	if none != nil {
		t.Errorf("AIProfile(globex) = %+v, want nil", none)
	}
}

func TestMissingCollection(t *testing.T) {
	s := New(t.TempDir())

	if _, err := s.Competitors(context.Background(), "acme"); !errors.Is(err, ErrCollectionMissing) {
		t.Errorf("Competitors() error = %v, want ErrCollectionMissing", err)
	}
	if _, err := s.Stat(CollectionKeywordAPI); !errors.Is(err, ErrCollectionMissing) {
		t.Errorf("Stat() error = %v, want ErrCollectionMissing", err)
	}
}

func TestMalformedCollection(t *testing.T) {
	dir := t.TempDir()
	writeCollection(t, dir, CollectionKeywordAPI, `{"not": "an array"`)

	_, err := New(dir).KeywordAPI(context.Background(), "acme")
	if err == nil {
		t.Fatal("expected decode error")
	}
	if errors.Is(err, ErrCollectionMissing) {
		t.Error("decode error reported as missing collection")
	}
}

func TestCancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeCollection(t, dir, CollectionClients, `[]`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New(dir).Clients(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Clients() error = %v, want context.Canceled", err)
	}
}

func TestStat(t *testing.T) {
	dir := t.TempDir()
	writeCollection(t, dir, CollectionCompetitors, `[]`)

	info, err := New(dir).Stat(CollectionCompetitors)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Size != 2 {
		t.Errorf("Size = %d, want 2", info.Size)
	}
	if info.ModTime.IsZero() {
		t.Error("ModTime is zero")
	}
}
