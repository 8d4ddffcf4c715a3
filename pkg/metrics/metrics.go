package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess     = "success"
	OutcomeHTTPError   = "http_error"
	OutcomeUnreachable = "unreachable"
	OutcomeError       = "error"
)

var (
	// UpstreamRequestsTotal counts calls made to the grid coordinator by operation and outcome
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grid_proxy_upstream_requests_total",
			Help: "Total number of requests sent to the selenium grid",
		},
		[]string{"operation", "outcome"},
	)

	// UpstreamRequestDuration tracks the duration of grid calls in seconds, retries included
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "grid_proxy_upstream_request_duration_seconds",
			Help:    "Duration of requests sent to the selenium grid in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"operation"},
	)

	// GridNodes is the node count seen in the last status snapshot
	GridNodes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "grid_proxy_grid_nodes",
			Help: "Number of grid nodes in the last status snapshot",
		},
	)

	// GridSlots is the slot count seen in the last status snapshot, by state
	GridSlots = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "grid_proxy_grid_slots",
			Help: "Number of grid slots in the last status snapshot",
		},
		[]string{"state"},
	)

	// SessionDeletionsTotal counts session kill requests by outcome
	SessionDeletionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grid_proxy_session_deletions_total",
			Help: "Total number of session deletions forwarded to the grid",
		},
		[]string{"outcome"},
	)
)

// RecordSnapshot publishes the counts of a freshly transformed status.
func RecordSnapshot(nodes, activeSessions, availableSlots int) {
	GridNodes.Set(float64(nodes))
	GridSlots.WithLabelValues("active").Set(float64(activeSessions))
	GridSlots.WithLabelValues("available").Set(float64(availableSlots))
}
