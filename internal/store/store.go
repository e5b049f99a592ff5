// Package store reads the flat-file record collections. Each collection is a JSON array
// stored as <name>.json in the data directory.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"seodash/internal/models"
)

// Collection names.
const (
	CollectionClients        = "clients"
	CollectionCompetitors    = "competitors"
	CollectionKeywordAPI     = "keyword_api"
	CollectionDomainKeywords = "domain_keywords"
	CollectionAIProfiles     = "ai_profiles"
)

// Collections lists every collection the store knows about.
var Collections = []string{
	CollectionClients,
	CollectionCompetitors,
	CollectionKeywordAPI,
	CollectionDomainKeywords,
	CollectionAIProfiles,
}

// ErrCollectionMissing is returned when a collection file does not exist.
var ErrCollectionMissing = errors.New("collection not found")

// Store reads collections from a directory. It keeps no state besides the directory,
// so every call sees the current file contents.
type Store struct {
	dir string
}

// New creates a store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file path of a collection.
func (s *Store) Path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// CollectionInfo describes a collection file on disk.
type CollectionInfo struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// Stat returns file metadata for a collection.
func (s *Store) Stat(collection string) (CollectionInfo, error) {
	fi, err := os.Stat(s.Path(collection))
	if err != nil {
		if os.IsNotExist(err) {
			return CollectionInfo{}, fmt.Errorf("%s: %w", collection, ErrCollectionMissing)
		}
		return CollectionInfo{}, fmt.Errorf("stat %s: %w", collection, err)
	}
	return CollectionInfo{Name: collection, Size: fi.Size(), ModTime: fi.ModTime()}, nil
}

// Clients returns every client.
func (s *Store) Clients(ctx context.Context) ([]models.Client, error) {
	return readCollection[models.Client](ctx, s, CollectionClients)
}

// Competitors returns the competitor rows of a client.
func (s *Store) Competitors(ctx context.Context, clientCode string) ([]models.Competitor, error) {
	rows, err := readCollection[models.Competitor](ctx, s, CollectionCompetitors)
	if err != nil {
		return nil, err
	}
	return filterByClient(rows, clientCode, func(r *models.Competitor) string { return r.ClientCode }), nil
}

// KeywordAPI returns the tracked keyword volume records of a client.
func (s *Store) KeywordAPI(ctx context.Context, clientCode string) ([]models.KeywordAPIRecord, error) {
	rows, err := readCollection[models.KeywordAPIRecord](ctx, s, CollectionKeywordAPI)
	if err != nil {
		return nil, err
	}
	return filterByClient(rows, clientCode, func(r *models.KeywordAPIRecord) string { return r.ClientCode }), nil
}

// DomainKeywords returns the SERP observations recorded for a client.
func (s *Store) DomainKeywords(ctx context.Context, clientCode string) ([]models.DomainKeywordRecord, error) {
	rows, err := readCollection[models.DomainKeywordRecord](ctx, s, CollectionDomainKeywords)
	if err != nil {
		return nil, err
	}
	return filterByClient(rows, clientCode, func(r *models.DomainKeywordRecord) string { return r.ClientCode }), nil
}

// AIProfile returns the term-dictionary profile of a client, or nil when it has none.
func (s *Store) AIProfile(ctx context.Context, clientCode string) (*models.AIProfile, error) {
	rows, err := readCollection[models.AIProfile](ctx, s, CollectionAIProfiles)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if strings.EqualFold(rows[i].ClientCode, clientCode) {
			return &rows[i], nil
		}
	}
	return nil, nil
}

func readCollection[T any](ctx context.Context, s *Store, collection string) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path(collection))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", collection, ErrCollectionMissing)
		}
		return nil, fmt.Errorf("reading %s: %w", collection, err)
	}

	var rows []T
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", collection, err)
	}
	return rows, nil
}

func filterByClient[T any](rows []T, clientCode string, code func(*T) string) []T {
	out := make([]T, 0, len(rows))
	for i := range rows {
		if strings.EqualFold(code(&rows[i]), clientCode) {
			out = append(out, rows[i])
		}
	}
	return out
}
