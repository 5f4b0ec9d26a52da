package nodesvc

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instrumentation for one node process. Each
// Server gets its own registry so tests can spin up multiple nodes in one
// process without colliding on global registration.
type Metrics struct {
	RoundsTotal          *prometheus.CounterVec
	ChunksMatchedTotal   prometheus.Counter
	ChunksUploadedTotal  prometheus.Counter
	BytesUploadedTotal   prometheus.Counter
	ChunksReclaimedTotal prometheus.Counter
	RoundDuration        prometheus.Histogram

	registry *prometheus.Registry
}

// NewMetrics creates and registers a fresh set of node metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		RoundsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chunkstore_node_rounds_total",
				Help: "Protocol rounds handled by this node, by outcome.",
			},
			[]string{"result"},
		),
		ChunksMatchedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chunkstore_node_chunks_matched_total",
			Help: "Chunks verified as already present during Verify.",
		}),
		ChunksUploadedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chunkstore_node_chunks_uploaded_total",
			Help: "Chunks accepted during Ingest.",
		}),
		BytesUploadedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chunkstore_node_bytes_uploaded_total",
			Help: "Bytes accepted during Ingest.",
		}),
		ChunksReclaimedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chunkstore_node_chunks_reclaimed_total",
			Help: "Chunks deleted by reclaim after a round.",
		}),
		RoundDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "chunkstore_node_round_duration_seconds",
			Help:    "Wall time of one Announce/Verify/Ingest round.",
			Buckets: prometheus.DefBuckets,
		}),
		registry: registry,
	}

	registry.MustRegister(
		m.RoundsTotal,
		m.ChunksMatchedTotal,
		m.ChunksUploadedTotal,
		m.BytesUploadedTotal,
		m.ChunksReclaimedTotal,
		m.RoundDuration,
	)
	return m
}

// Handler returns the Prometheus scrape handler for this node's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
