package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SourceQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salesweather_source_queries_total",
			Help: "Total warehouse queries issued, by query and outcome",
		},
		[]string{"query", "status"},
	)

	SourceQueryLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "salesweather_source_query_latency_seconds",
			Help:    "Warehouse query latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query"},
	)

	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salesweather_cache_lookups_total",
			Help: "Memoized query lookups, by query and hit/miss",
		},
		[]string{"query", "result"},
	)

	PipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salesweather_pipeline_runs_total",
			Help: "Dashboard pipeline runs, by variant and outcome (ok, empty, error)",
		},
		[]string{"variant", "outcome"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salesweather_http_requests_total",
			Help: "HTTP requests served, by route pattern, method and status code",
		},
		[]string{"route", "method", "code"},
	)
)
