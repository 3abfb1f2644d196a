// Package metrics exposes application metrics collectors.
package metrics

import (
	"time"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "midnight_indexer"

var ingesterStates = []string{"idle", "catching_up", "live", "stopping"}

var (
	ingesterFetchMissingTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ingester",
		Name:      "fetch_missing_total",
		Help:      "Count of gap detection runs.",
	}, []string{"network", "status"})

	ingesterFetchMissingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ingester",
		Name:      "fetch_missing_duration_seconds",
		Help:      "Duration of gap detection queries.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	ingesterProcessBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ingester",
		Name:      "process_batch_total",
		Help:      "Count of processed height batches.",
	}, []string{"network", "status"})

	ingesterProcessBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ingester",
		Name:      "process_batch_duration_seconds",
		Help:      "Duration of processing a batch of heights.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	ingesterProcessBatchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ingester",
		Name:      "process_batch_size",
		Help:      "Number of heights processed per batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1..2048
	}, []string{"network"})

	ingesterProcessHeightTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ingester",
		Name:      "process_height_total",
		Help:      "Count of imported heights.",
	}, []string{"network", "status"})

	ingesterProcessHeightDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ingester",
		Name:      "process_height_duration_seconds",
		Help:      "Duration of importing a single height.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	ingesterCheckpoint = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "ingester",
		Name:      "checkpoint_height",
		Help:      "Last height committed with a checkpoint advance.",
	}, []string{"network"})

	ingesterHead = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "ingester",
		Name:      "head_height",
		Help:      "Latest head height observed from the chain node.",
	}, []string{"network", "kind"})

	ingesterRetryQueue = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "ingester",
		Name:      "retry_queue_size",
		Help:      "Heights waiting for ledger data.",
	}, []string{"network"})

	ingesterState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "ingester",
		Name:      "state",
		Help:      "Current ingestion state; the active state is 1.",
	}, []string{"network", "state"})
)

// Ingester tracks metrics for the ingestion pipeline.
type Ingester struct {
	network model.Network
}

// NewIngester constructs an Ingester with sane defaults.
func NewIngester(network model.Network) *Ingester {
	if network == "" {
		network = "unknown"
	}
	return &Ingester{network: network}
}

// ObserveFetchMissing records a gap detection outcome and duration.
func (m Ingester) ObserveFetchMissing(err error, started time.Time) {
	status := statusOf(err)
	ingesterFetchMissingTotal.WithLabelValues(string(m.network), status).Inc()
	ingesterFetchMissingDuration.WithLabelValues(string(m.network), status).
		Observe(time.Since(started).Seconds())
}

// ObserveProcessBatch records processing of a batch of heights.
func (m Ingester) ObserveProcessBatch(err error, heights int, started time.Time) {
	status := statusOf(err)
	ingesterProcessBatchTotal.WithLabelValues(string(m.network), status).Inc()
	ingesterProcessBatchDuration.WithLabelValues(string(m.network), status).
		Observe(time.Since(started).Seconds())
	ingesterProcessBatchSize.WithLabelValues(string(m.network)).Observe(float64(heights))
}

// ObserveProcessHeight records the import of a single height.
func (m Ingester) ObserveProcessHeight(err error, _ uint64, started time.Time) {
	status := statusOf(err)
	ingesterProcessHeightTotal.WithLabelValues(string(m.network), status).Inc()
	ingesterProcessHeightDuration.WithLabelValues(string(m.network), status).
		Observe(time.Since(started).Seconds())
}

func (m Ingester) SetCheckpoint(height uint64) {
	ingesterCheckpoint.WithLabelValues(string(m.network)).Set(float64(height))
}

func (m Ingester) SetHead(kind string, height uint64) {
	ingesterHead.WithLabelValues(string(m.network), kind).Set(float64(height))
}

func (m Ingester) SetRetryQueue(size int) {
	ingesterRetryQueue.WithLabelValues(string(m.network)).Set(float64(size))
}

// SetState marks state as the active one.
func (m Ingester) SetState(state string) {
	for _, s := range ingesterStates {
		ingesterState.WithLabelValues(string(m.network), s).Set(0)
	}
	ingesterState.WithLabelValues(string(m.network), state).Set(1)
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
