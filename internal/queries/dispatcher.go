// Package queries executes dashboard queries: it loads a client's record collections,
// routes to the aggregator registered for the query type and wraps the result in the
// uniform envelope.
package queries

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"seodash/internal/models"
	"seodash/internal/validation"
)

// Aggregator computes the data of one query type from a loaded snapshot.
type Aggregator func(s *Snapshot, cfg models.QueryConfig) (any, error)

type registration struct {
	needs  Needs
	run    Aggregator
	source models.SourceLink
}

const (
	serpNeeds    = NeedCompetitors | NeedKeywordAPI | NeedDomainKeywords
	classifyNeed = NeedCompetitors | NeedTerms
)

var registry = map[string]registration{
	"client-rankings": {
		needs:  NeedCompetitors | NeedDomainKeywords,
		run:    clientRankings,
		source: models.SourceLink{Label: "Domain keyword rankings", Href: "/data/domain-keywords"},
	},
	"keywords-absence": {
		needs:  serpNeeds,
		run:    keywordsAbsence,
		source: models.SourceLink{Label: "Tracked keywords vs. SERP positions", Href: "/data/keyword-api"},
	},
	"market-size": {
		needs:  serpNeeds,
		run:    marketSize,
		source: models.SourceLink{Label: "Keyword volumes and CTR model", Href: "/data/domain-keywords"},
	},
	"keyword-opportunity-matrix": {
		needs:  serpNeeds | classifyNeed,
		run:    opportunityMatrix,
		source: models.SourceLink{Label: "Opportunity matrix keywords", Href: "/data/domain-keywords"},
	},
	"brand-power": {
		needs:  NeedDomainKeywords | classifyNeed,
		run:    brandPower,
		source: models.SourceLink{Label: "Brand term dictionary", Href: "/data/ai-profiles"},
	},
	"keyword-quadrant": {
		needs:  serpNeeds,
		run:    keywordQuadrant,
		source: models.SourceLink{Label: "Tracked keywords vs. SERP positions", Href: "/data/keyword-api"},
	},
	"competitor-gap": {
		needs:  serpNeeds,
		run:    competitorGap,
		source: models.SourceLink{Label: "Competitor SERP positions", Href: "/data/competitors"},
	},
	"blue-ocean": {
		needs:  NeedKeywordAPI | NeedDomainKeywords,
		run:    blueOcean,
		source: models.SourceLink{Label: "Unranked keyword volumes", Href: "/data/keyword-api"},
	},
	"domain-info": {
		needs:  serpNeeds,
		run:    domainInfo,
		source: models.SourceLink{Label: "Client and competitor profiles", Href: "/data/clients"},
	},
	"term-buckets": {
		needs:  NeedKeywordAPI | NeedDomainKeywords | classifyNeed,
		run:    termBuckets,
		source: models.SourceLink{Label: "Term dictionary", Href: "/data/ai-profiles"},
	},
	"digital-footprint": {
		needs:  NeedKeywordAPI | NeedDomainKeywords | NeedSurfaces,
		run:    digitalFootprint,
		source: models.SourceLink{Label: "Footprint surfaces", Href: "/settings/footprint-surfaces"},
	},
}

// RegisteredTypes returns the query types with an aggregator, sorted.
func RegisteredTypes() []string {
	types := make([]string, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Placeholder is returned for query types without an aggregator.
type Placeholder struct {
	Placeholder bool   `json:"placeholder"`
	Message     string `json:"message"`
}

// Catalog resolves query ids to definitions.
type Catalog interface {
	Lookup(id string) (models.QueryDefinition, bool)
}

// Observer is notified after every execution attempt.
type Observer func(models.QueryExecution)

// Engine executes queries. It holds no per-request state and is safe for concurrent use.
type Engine struct {
	catalog   Catalog
	loader    *Loader
	log       zerolog.Logger
	now       func() time.Time
	observers []Observer
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source used for executedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithObserver registers an execution observer.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}

// NewEngine creates an engine over a catalog and a loader.
func NewEngine(catalog Catalog, loader *Loader, log zerolog.Logger, opts ...Option) *Engine {
	e := &Engine{
		catalog: catalog,
		loader:  loader,
		log:     log.With().Str("component", "engine").Logger(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs the catalog query queryID for a client.
func (e *Engine) Execute(ctx context.Context, clientCode, queryID string) (*models.QueryResult, error) {
	start := e.now()
	clientCode = strings.TrimSpace(clientCode)
	queryID = strings.TrimSpace(queryID)

	if err := validateRequest(clientCode, queryID); err != nil {
		e.notify(clientCode, queryID, "", start, err, false)
		return nil, err
	}

	def, ok := e.catalog.Lookup(queryID)
	if !ok {
		err := fmt.Errorf("%w: %s", ErrQueryNotFound, queryID)
		e.notify(clientCode, queryID, "", start, err, false)
		return nil, err
	}

	return e.run(ctx, clientCode, def, start)
}

// Run executes an inline definition without consulting the catalog.
func (e *Engine) Run(ctx context.Context, clientCode string, def models.QueryDefinition) (*models.QueryResult, error) {
	start := e.now()
	clientCode = strings.TrimSpace(clientCode)
	def.QueryType = strings.TrimSpace(def.QueryType)

	if err := validateClientCode(clientCode); err != nil {
		e.notify(clientCode, def.ID, def.QueryType, start, err, false)
		return nil, err
	}
	if def.QueryType == "" {
		e.notify(clientCode, def.ID, "", start, ErrMissingQueryType, false)
		return nil, ErrMissingQueryType
	}
	if def.ID == "" {
		def.ID = def.QueryType
	}
	if def.Title == "" {
		def.Title = def.QueryType
	}
	if def.Status == "" {
		def.Status = models.QueryStatusActive
	}

	return e.run(ctx, clientCode, def, start)
}

func (e *Engine) run(ctx context.Context, clientCode string, def models.QueryDefinition, start time.Time) (*models.QueryResult, error) {
	cfg, err := normalizeConfig(def.Config)
	if err != nil {
		e.notify(clientCode, def.ID, def.QueryType, start, err, false)
		return nil, err
	}

	reg, known := registry[def.QueryType]
	snap, err := e.loader.Load(ctx, clientCode, reg.needs)
	if err != nil {
		e.notify(clientCode, def.ID, def.QueryType, start, err, false)
		return nil, err
	}

	var data any
	source := models.SourceLink{Label: "Query catalog", Href: "/queries"}
	if known {
		data, err = reg.run(snap, cfg)
		if err != nil {
			err = fmt.Errorf("%s: %w", def.QueryType, err)
			e.notify(clientCode, def.ID, def.QueryType, start, err, false)
			return nil, err
		}
		source = reg.source
	} else {
		data = Placeholder{
			Placeholder: true,
			Message:     fmt.Sprintf("No execution logic defined for query type %q", def.QueryType),
		}
	}
	source.Href = source.Href + "?client=" + url.QueryEscape(snap.Client.Code)

	result := &models.QueryResult{
		QueryID:    def.ID,
		ClientCode: snap.Client.Code,
		Title:      def.Title,
		Status:     def.Status,
		QueryType:  def.QueryType,
		Data:       data,
		ExecutedAt: e.now().UTC().Format(time.RFC3339),
		SourceLink: source,
	}
	e.notify(snap.Client.Code, def.ID, def.QueryType, start, nil, !known)
	return result, nil
}

func (e *Engine) notify(clientCode, queryID, queryType string, start time.Time, err error, placeholder bool) {
	exec := models.QueryExecution{
		ClientCode: clientCode,
		QueryID:    queryID,
		QueryType:  queryType,
		Outcome:    outcomeOf(err, placeholder),
		DurationMS: e.now().Sub(start).Milliseconds(),
		ExecutedAt: start.UTC(),
	}

	var ev *zerolog.Event
	switch {
	case exec.Outcome == models.OutcomeError:
		ev = e.log.Error().Err(err)
	case err != nil:
		ev = e.log.Info().Str("reason", err.Error())
	default:
		ev = e.log.Info()
	}
	ev.Str("query_id", queryID).
		Str("query_type", queryType).
		Str("client_code", clientCode).
		Str("outcome", exec.Outcome).
		Int64("duration_ms", exec.DurationMS).
		Msg("query executed")

	for _, o := range e.observers {
		o(exec)
	}
}

func outcomeOf(err error, placeholder bool) string {
	switch {
	case err == nil && placeholder:
		return models.OutcomePlaceholder
	case err == nil:
		return models.OutcomeSuccess
	case IsValidation(err):
		return models.OutcomeInvalid
	case IsNotFound(err):
		return models.OutcomeNotFound
	default:
		return models.OutcomeError
	}
}

func validateClientCode(clientCode string) error {
	if clientCode == "" {
		return ErrMissingClientCode
	}
	if !validation.ValidateIdentifier(clientCode) {
		return fmt.Errorf("%w: clientCode %q", ErrInvalidIdentifier, clientCode)
	}
	return nil
}

func validateRequest(clientCode, queryID string) error {
	if err := validateClientCode(clientCode); err != nil {
		return err
	}
	if queryID == "" {
		return ErrMissingQueryID
	}
	if !validation.ValidateIdentifier(queryID) {
		return fmt.Errorf("%w: queryId %q", ErrInvalidIdentifier, queryID)
	}
	return nil
}

func normalizeConfig(cfg models.QueryConfig) (models.QueryConfig, error) {
	if cfg.Limit < 0 {
		return cfg, fmt.Errorf("%w: limit must not be negative", ErrInvalidConfig)
	}
	if !validation.ValidateLocationFilter(cfg.Location) {
		return cfg, fmt.Errorf("%w: unknown location %q", ErrInvalidConfig, cfg.Location)
	}
	if cfg.Location != "" {
		cfg.Location = validation.NormalizeLocation(cfg.Location)
	}
	return cfg, nil
}
