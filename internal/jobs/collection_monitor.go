// Package jobs runs background maintenance loops.
package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"seodash/internal/metrics"
	"seodash/internal/store"
)

// CollectionStatter reports file metadata for a collection.
type CollectionStatter interface {
	Stat(collection string) (store.CollectionInfo, error)
}

// CollectionMonitor periodically checks that the record collections exist and are fresh.
type CollectionMonitor struct {
	store    CollectionStatter
	interval time.Duration
	maxAge   time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

// NewCollectionMonitor creates a new collection monitor.
func NewCollectionMonitor(s CollectionStatter, interval, maxAge time.Duration, log zerolog.Logger) *CollectionMonitor {
	return &CollectionMonitor{
		store:    s,
		interval: interval,
		maxAge:   maxAge,
		log:      log.With().Str("component", "collection_monitor").Logger(),
		now:      time.Now,
	}
}

// Start begins the background check loop.
func (m *CollectionMonitor) Start(ctx context.Context) {
	m.log.Info().Dur("interval", m.interval).Dur("max_age", m.maxAge).Msg("collection monitor started")

	// Run immediately on start
	m.checkAll(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.Info().Msg("collection monitor stopped")
			return
		case <-ticker.C:
			m.checkAll(ctx)
		}
	}
}

// checkAll stats every collection, publishes gauges and returns the names of stale
// or missing collections.
func (m *CollectionMonitor) checkAll(ctx context.Context) []string {
	now := m.now()
	var problems []string

	for _, name := range store.Collections {
		if ctx.Err() != nil {
			return problems
		}

		info, err := m.store.Stat(name)
		if err != nil {
			metrics.ClearCollectionStats(name)
			problems = append(problems, name)
			if errors.Is(err, store.ErrCollectionMissing) {
				m.log.Warn().Str("collection", name).Msg("collection missing")
			} else {
				m.log.Error().Err(err).Str("collection", name).Msg("failed to stat collection")
			}
			continue
		}

		metrics.SetCollectionStats(info, now)
		if age := now.Sub(info.ModTime); age > m.maxAge {
			problems = append(problems, name)
			m.log.Warn().Str("collection", name).Dur("age", age).Msg("collection is stale")
		}
	}

	return problems
}
