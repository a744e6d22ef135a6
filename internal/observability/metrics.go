package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "simpleforum_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "simpleforum_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// PageItems records how many items each paginated read returned.
	PageItems = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "simpleforum_page_items",
		Help:    "Number of items returned per paginated read",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
	}, []string{"table"})

	// InFlightMutations is the number of write jobs currently running.
	InFlightMutations = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "simpleforum_inflight_mutations",
		Help: "Number of mutating requests currently being executed",
	})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
