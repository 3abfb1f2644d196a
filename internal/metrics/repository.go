package metrics

import (
	"time"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	repositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "repository",
		Name:      "operations_total",
		Help:      "Count of repository operations.",
	}, []string{"store", "operation", "network", "status"})
	repositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of repository operations.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30},
	}, []string{"store", "operation", "network", "status"})
)

// Repository tracks metrics for one store's repository operations.
type Repository struct {
	store string
}

// NewPostgresRepository creates a collector for the relational store.
func NewPostgresRepository() *Repository {
	return &Repository{store: "postgres"}
}

// NewClickhouseRepository creates a collector for the analytics mirror.
func NewClickhouseRepository() *Repository {
	return &Repository{store: "clickhouse"}
}

// Observe records duration and status of a repository operation.
func (m Repository) Observe(operation string, network model.Network, err error, started time.Time) {
	if network == "" {
		network = "unknown"
	}
	status := statusOf(err)
	repositoryRequestsTotal.WithLabelValues(m.store, operation, string(network), status).Inc()
	repositoryRequestDuration.WithLabelValues(m.store, operation, string(network), status).Observe(time.Since(started).Seconds())
}
