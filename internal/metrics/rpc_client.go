package metrics

import (
	"time"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rpcRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "source_client",
		Name:      "operations_total",
		Help:      "Count of chain node and ledger API calls.",
	}, []string{"source", "operation", "network", "status"})
	rpcRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "source_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of chain node and ledger API calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source", "operation", "network", "status"})
)

// SourceClient tracks calls made to one upstream source.
type SourceClient struct {
	source string
}

// NewChainRPC constructs a collector for chain node RPC calls.
func NewChainRPC() *SourceClient {
	return &SourceClient{source: "chain"}
}

// NewLedgerAPI constructs a collector for ledger API queries.
func NewLedgerAPI() *SourceClient {
	return &SourceClient{source: "ledger"}
}

// Observe records a single call outcome and duration.
func (m SourceClient) Observe(operation string, network model.Network, err error, started time.Time) {
	if network == "" {
		network = "unknown"
	}
	status := statusOf(err)
	rpcRequestsTotal.WithLabelValues(m.source, operation, string(network), status).Inc()
	rpcRequestDuration.WithLabelValues(m.source, operation, string(network), status).Observe(time.Since(started).Seconds())
}
