// Package metrics provides Prometheus metrics for the MTGA Korean card exporter
// and lookup service. Scrape these at /metrics for Grafana dashboards and alerting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mtgako_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mtgako_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mtgako_http_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)

	// Lookup Metrics
	LookupRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mtgako_lookup_requests_total",
			Help: "Card lookups by result",
		},
		[]string{"result"}, // "hit", "miss"
	)

	LookupRecordsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mtgako_lookup_records_loaded",
			Help: "Number of records in the served card document",
		},
	)

	// Export Metrics
	CardsExportedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mtgako_cards_exported_total",
			Help: "Card records written to exported documents",
		},
	)

	DuplicateCardsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mtgako_duplicate_cards_dropped_total",
			Help: "Card rows dropped because their English title was already exported",
		},
	)

	AbilityLinesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mtgako_ability_lines_dropped_total",
			Help: "Ability lines left out because no Korean text exists",
		},
	)

	AnnotationsAttached = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mtgako_annotations_attached_total",
			Help: "Keyword footnotes appended to annotated ability text",
		},
	)

	AnnotationDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mtgako_annotation_decisions_total",
			Help: "Annotation resolver outcomes",
		},
		[]string{"decision"}, // "title-body-pair", "title-fallback", "core", "duplicate", "no-match"
	)

	LocalizationCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mtgako_localization_cache_hits_total",
			Help: "Localization cache hit count",
		},
	)

	LocalizationCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mtgako_localization_cache_misses_total",
			Help: "Localization cache miss count",
		},
	)

	SnapshotFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mtgako_snapshot_failures_total",
			Help: "Card database snapshots that failed to export",
		},
	)

	ExportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mtgako_export_duration_seconds",
			Help:    "Time taken to export one card database snapshot",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
	)
)
