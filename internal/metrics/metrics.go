// Package metrics exposes query execution and data freshness metrics to Prometheus.
package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"seodash/internal/models"
	"seodash/internal/store"
)

var (
	executionsDesc = prometheus.NewDesc(
		"seodash_query_executions_total",
		"Total logged query executions by query type and outcome",
		[]string{"query_type", "outcome"},
		nil,
	)

	executionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seodash_query_duration_seconds",
			Help:    "Query execution latency by query type and outcome",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query_type", "outcome"},
	)

	collectionAge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "seodash_collection_age_seconds",
			Help: "Seconds since a record collection file was last modified",
		},
		[]string{"collection"},
	)

	collectionBytes = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "seodash_collection_bytes",
			Help: "Size of a record collection file in bytes",
		},
		[]string{"collection"},
	)
)

// ExecutionStore is the persistent execution log.
type ExecutionStore interface {
	RecordQueryExecution(ctx context.Context, e *models.QueryExecution) error
	GetExecutionCounts(ctx context.Context) ([]models.ExecutionCount, error)
}

// ExecutionCollector is a custom Prometheus collector that reads execution counts
// from the database on each scrape.
type ExecutionCollector struct {
	db  ExecutionStore
	log zerolog.Logger
}

// Describe sends the metric descriptor to the channel.
func (c *ExecutionCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- executionsDesc
}

// Collect queries the execution log and emits one counter per query type and outcome.
func (c *ExecutionCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	counts, err := c.db.GetExecutionCounts(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("failed to collect query execution metrics")
		return
	}
	for _, n := range counts {
		ch <- prometheus.MustNewConstMetric(
			executionsDesc,
			prometheus.CounterValue,
			float64(n.Count),
			n.QueryType,
			n.Outcome,
		)
	}
}

// Recorder provides async execution recording.
type Recorder struct {
	db  ExecutionStore
	log zerolog.Logger
	wg  sync.WaitGroup
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init registers the collectors and initializes the recorder. database may be nil,
// in which case executions are only observed in the latency histogram.
// Must be called once at startup.
func Init(database ExecutionStore, log zerolog.Logger) {
	recorderOnce.Do(func() {
		log = log.With().Str("component", "metrics").Logger()
		recorder = &Recorder{db: database, log: log}
		prometheus.MustRegister(executionDuration, collectionAge, collectionBytes)
		if database != nil {
			prometheus.MustRegister(&ExecutionCollector{db: database, log: log})
		}
	})
}

// RecordQueryExecution observes an execution and asynchronously appends it to the
// execution log. It has the signature of a query engine observer.
func RecordQueryExecution(e models.QueryExecution) {
	executionDuration.WithLabelValues(e.QueryType, e.Outcome).Observe(float64(e.DurationMS) / 1000)

	if recorder == nil || recorder.db == nil {
		return
	}
	recorder.wg.Add(1)
	go func() {
		defer recorder.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := recorder.db.RecordQueryExecution(ctx, &e); err != nil {
			recorder.log.Error().Err(err).
				Str("client", e.ClientCode).
				Str("query_id", e.QueryID).
				Msg("failed to record query execution")
		}
	}()
}

// Flush waits for pending execution writes.
func Flush() {
	if recorder != nil {
		recorder.wg.Wait()
	}
}

// SetCollectionStats publishes the size and age of a collection file.
func SetCollectionStats(info store.CollectionInfo, now time.Time) {
	collectionAge.WithLabelValues(info.Name).Set(now.Sub(info.ModTime).Seconds())
	collectionBytes.WithLabelValues(info.Name).Set(float64(info.Size))
}

// ClearCollectionStats removes the series of a collection that no longer exists.
func ClearCollectionStats(name string) {
	collectionAge.DeleteLabelValues(name)
	collectionBytes.DeleteLabelValues(name)
}
