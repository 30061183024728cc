// Package query provides Prometheus metrics for the fetch cache.
package query

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// QueryCacheHitsTotal tracks cache hits
	QueryCacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "workbench_query_cache_hits_total",
			Help: "Total number of query cache hits",
		},
	)

	// QueryCacheMissesTotal tracks cache misses
	QueryCacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "workbench_query_cache_misses_total",
			Help: "Total number of query cache misses",
		},
	)

	// QueryCacheHitRatio tracks the cache hit ratio
	QueryCacheHitRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "workbench_query_cache_hit_ratio",
			Help: "Query cache hit ratio",
		},
	)
)
