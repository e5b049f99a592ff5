package queries

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"seodash/internal/models"
	"seodash/internal/store"
)

// Source is the read interface of the flat-record store.
type Source interface {
	Clients(ctx context.Context) ([]models.Client, error)
	Competitors(ctx context.Context, clientCode string) ([]models.Competitor, error)
	KeywordAPI(ctx context.Context, clientCode string) ([]models.KeywordAPIRecord, error)
	DomainKeywords(ctx context.Context, clientCode string) ([]models.DomainKeywordRecord, error)
	AIProfile(ctx context.Context, clientCode string) (*models.AIProfile, error)
}

// SettingsSource is the read interface of the relational settings store.
type SettingsSource interface {
	FootprintSurfaces(ctx context.Context) ([]models.FootprintSurface, error)
}

// Needs is a set of collections an aggregator reads.
type Needs uint8

const (
	NeedCompetitors Needs = 1 << iota
	NeedKeywordAPI
	NeedDomainKeywords
	NeedTerms
	NeedSurfaces
)

func (n Needs) has(flag Needs) bool {
	return n&flag != 0
}

// Snapshot holds the collections loaded for one execution. It is owned by that
// execution and never shared.
type Snapshot struct {
	Client         models.Client
	Competitors    []models.Competitor
	KeywordAPI     []models.KeywordAPIRecord
	DomainKeywords []models.DomainKeywordRecord
	Terms          []models.TermEntry
	Surfaces       []models.FootprintSurface
}

// Loader builds snapshots. Failed reads degrade to empty collections.
type Loader struct {
	src      Source
	settings SettingsSource
	log      zerolog.Logger
}

// NewLoader creates a loader. settings may be nil when no relational store is configured.
func NewLoader(src Source, settings SettingsSource, log zerolog.Logger) *Loader {
	return &Loader{
		src:      src,
		settings: settings,
		log:      log.With().Str("component", "loader").Logger(),
	}
}

// Clients returns every known client, or an empty list when the collection cannot be read.
func (l *Loader) Clients(ctx context.Context) ([]models.Client, error) {
	rows, err := l.src.Clients(ctx)
	return soften(ctx, l, store.CollectionClients, "", rows, err)
}

// FindClient looks up a client by code, case-insensitively.
func (l *Loader) FindClient(ctx context.Context, clientCode string) (models.Client, error) {
	clients, err := l.Clients(ctx)
	if err != nil {
		return models.Client{}, err
	}
	for _, c := range clients {
		if strings.EqualFold(c.Code, clientCode) {
			return c, nil
		}
	}
	return models.Client{}, fmt.Errorf("%w: %s", ErrClientNotFound, clientCode)
}

// Load resolves the client and then reads the requested collections concurrently.
// Aggregation starts only after every read has finished.
func (l *Loader) Load(ctx context.Context, clientCode string, needs Needs) (*Snapshot, error) {
	client, err := l.FindClient(ctx, clientCode)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{Client: client}
	code := client.Code
	g, gctx := errgroup.WithContext(ctx)

	if needs.has(NeedCompetitors) {
		g.Go(func() error {
			rows, err := l.src.Competitors(gctx, code)
			snap.Competitors, err = soften(gctx, l, store.CollectionCompetitors, code, rows, err)
			return err
		})
	}
	if needs.has(NeedKeywordAPI) {
		g.Go(func() error {
			rows, err := l.src.KeywordAPI(gctx, code)
			snap.KeywordAPI, err = soften(gctx, l, store.CollectionKeywordAPI, code, rows, err)
			return err
		})
	}
	if needs.has(NeedDomainKeywords) {
		g.Go(func() error {
			rows, err := l.src.DomainKeywords(gctx, code)
			snap.DomainKeywords, err = soften(gctx, l, store.CollectionDomainKeywords, code, rows, err)
			return err
		})
	}
	if needs.has(NeedTerms) {
		g.Go(func() error {
			profile, err := l.src.AIProfile(gctx, code)
			if err != nil {
				_, err = soften[models.AIProfile](gctx, l, store.CollectionAIProfiles, code, nil, err)
				return err
			}
			snap.Terms = l.termEntries(profile)
			return nil
		})
	}
	if needs.has(NeedSurfaces) && l.settings != nil {
		g.Go(func() error {
			rows, err := l.settings.FootprintSurfaces(gctx)
			snap.Surfaces, err = soften(gctx, l, "footprint_surfaces", code, rows, err)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

func (l *Loader) termEntries(profile *models.AIProfile) []models.TermEntry {
	if profile == nil {
		return nil
	}
	entries, rejected := profile.Entries()
	for _, r := range rejected {
		l.log.Warn().Str("client_code", profile.ClientCode).Str("entry", r).Msg("dropping term with unknown bucket label")
	}
	return entries
}

// soften turns a read failure into an empty collection. Only cancellation of the
// request is propagated.
func soften[T any](ctx context.Context, l *Loader, collection, clientCode string, rows []T, err error) ([]T, error) {
	if err == nil {
		return rows, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if errors.Is(err, store.ErrCollectionMissing) {
		l.log.Debug().Str("collection", collection).Str("client_code", clientCode).Msg("collection absent, using empty set")
		return nil, nil
	}
	l.log.Warn().Err(err).Str("collection", collection).Str("client_code", clientCode).Msg("collection unavailable, using empty set")
	return nil, nil
}
