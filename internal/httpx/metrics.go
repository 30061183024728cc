// Package httpx provides Prometheus metrics for API requests.
package httpx

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequestsTotal tracks API requests by method and outcome
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workbench_api_requests_total",
			Help: "Total number of workbench API requests",
		},
		[]string{"method", "outcome"}, // outcome: ok, http_error, network_error
	)

	// APIRequestLatency tracks API request latency
	APIRequestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "workbench_api_request_latency_seconds",
			Help:    "Workbench API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// APIRedirectsTotal tracks manually re-dispatched redirects
	APIRedirectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "workbench_api_redirects_total",
			Help: "Total number of manually followed redirects",
		},
	)
)
