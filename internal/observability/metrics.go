package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devcomm_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CacheHits counts cache-aside hits by key prefix.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devcomm_cache_hits_total",
		Help: "Total number of cache hits by key prefix",
	}, []string{"prefix"})

	// CacheMisses counts cache-aside misses by key prefix.
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devcomm_cache_misses_total",
		Help: "Total number of cache misses by key prefix",
	}, []string{"prefix"})

	// CommunitiesCreated counts successful community submissions.
	CommunitiesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "devcomm_communities_created_total",
		Help: "Total number of communities created through the API",
	})

	// ListingQueries counts listing requests by whether a text search was present.
	ListingQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devcomm_listing_queries_total",
		Help: "Total number of listing queries by search presence",
	}, []string{"search"})
)
