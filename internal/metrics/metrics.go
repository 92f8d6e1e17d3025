package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// TVmaze API metrics
var (
	// UpstreamRequestsTotal counts TVmaze lookups by endpoint and outcome (success, error, invalid, cached).
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showbrowser_tvmaze_requests_total",
			Help: "Total number of TVmaze lookups by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "showbrowser_tvmaze_request_duration_seconds",
			Help:    "Duration of TVmaze requests including retries.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

// Rendering metrics
var (
	// ViewRendersTotal counts rendered views (page, shows, episodes) by status.
	ViewRendersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showbrowser_view_renders_total",
			Help: "Total number of rendered views.",
		},
		[]string{"view", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		UpstreamRequestsTotal,
		UpstreamRequestDuration,
		ViewRendersTotal,
	)
}
