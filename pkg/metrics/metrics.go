package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)
	FeedLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_loads_total",
			Help: "Total number of feed load attempts by outcome (fresh, cached, stale, failed)",
		},
		[]string{"outcome"},
	)
	FeedLoadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feed_load_duration_seconds",
			Help:    "Duration of full feed fetch and parse cycles in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
	FeedRecordsDropped = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "feed_records_dropped",
			Help: "Number of malformed records dropped during the most recent feed load",
		},
	)
	GeocodeCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geocode_calls_total",
			Help: "Total number of external geocoding calls by outcome (ok, timeout, error, empty)",
		},
		[]string{"outcome"},
	)
	GeocodeCallDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "geocode_call_duration_seconds",
			Help:    "External geocoding call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
	LocationCacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "location_cache_hits_total",
			Help: "Total number of location precision cache hits",
		},
	)
	LocationCacheMissesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "location_cache_misses_total",
			Help: "Total number of location precision cache misses",
		},
	)
	RedisOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_operation_duration_seconds",
			Help:    "Redis operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	RedisErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_errors_total",
			Help: "Total number of Redis operation errors",
		},
		[]string{"operation"},
	)
)

func Init() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(FeedLoadsTotal)
	prometheus.MustRegister(FeedLoadDuration)
	prometheus.MustRegister(FeedRecordsDropped)
	prometheus.MustRegister(GeocodeCallsTotal)
	prometheus.MustRegister(GeocodeCallDuration)
	prometheus.MustRegister(LocationCacheHitsTotal)
	prometheus.MustRegister(LocationCacheMissesTotal)
	prometheus.MustRegister(RedisOperationDuration)
	prometheus.MustRegister(RedisErrorsTotal)
}
