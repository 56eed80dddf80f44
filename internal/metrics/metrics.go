package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// HTTP API metrics
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests served, by route template and status code.",
		},
		[]string{"route", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Time spent serving HTTP requests, by route template.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	RateLimitedRequestsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limited_requests_total",
			Help: "Total number of requests rejected by the per-client rate limiter.",
		},
	)
)

// Upstream metrics
var (
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of requests sent to upstream services, by service and outcome.",
		},
		[]string{"service", "status"},
	)

	UpstreamRetriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_retries_total",
			Help: "Total number of retried upstream requests.",
		},
		[]string{"service"},
	)

	HomeSectionFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "home_section_failures_total",
			Help: "Total number of home page sections left empty because their fetch failed.",
		},
		[]string{"section"},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		RateLimitedRequestsTotal,
		UpstreamRequestsTotal,
		UpstreamRetriesTotal,
		HomeSectionFailuresTotal,
	)
}
