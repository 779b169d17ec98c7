package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gallery_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gallery_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Manifest load metrics
var (
	ManifestLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_manifest_loads_total",
			Help: "Total number of manifest load attempts by source and status",
		},
		[]string{"source", "status"},
	)

	ManifestLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gallery_manifest_load_duration_seconds",
			Help:    "Manifest load duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	ManifestItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gallery_manifest_items",
			Help: "Number of items in the current catalog snapshot",
		},
	)

	ManifestLastLoadTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gallery_manifest_last_load_timestamp",
			Help: "Unix timestamp of the last completed manifest load",
		},
	)

	ManifestDegraded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gallery_manifest_degraded",
			Help: "1 when the current snapshot was not served by the primary JSON source",
		},
	)
)

// Catalog query metrics
var (
	FilterRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gallery_filter_requests_total",
			Help: "Total number of item filter evaluations",
		},
	)

	FacetRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gallery_facet_requests_total",
			Help: "Total number of facet extraction requests",
		},
	)
)

// Cache metrics
var (
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_cache_operations_total",
			Help: "Total number of snapshot cache operations by operation and status",
		},
		[]string{"operation", "status"},
	)

	CacheQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gallery_cache_query_duration_seconds",
			Help:    "Snapshot cache query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"operation"},
	)
)

// Contact link metrics
var (
	ContactLinksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_contact_links_total",
			Help: "Total number of outbound contact links built by channel",
		},
		[]string{"channel"},
	)
)
