package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "smartride_portal", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "route", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "smartride_portal",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	GatewayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "smartride_portal", Name: "gateway_requests_total", Help: "Calls made to the SmartRide backend"},
		[]string{"method", "status"},
	)
	GatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "smartride_portal",
			Name:      "gateway_request_duration_seconds",
			Help:      "Backend call latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	ListFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "smartride_portal", Name: "list_fetches_total", Help: "List view collection fetches"},
		[]string{"resource", "outcome"},
	)
	MountedViews = promauto.NewGaugeVec(
		prometheus.GaugeOpts{Namespace: "smartride_portal", Name: "mounted_views", Help: "List views currently polling"},
		[]string{"resource"},
	)

	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "smartride_portal", Name: "cache_lookups_total", Help: "Profile cache lookups"},
		[]string{"result"},
	)
)
