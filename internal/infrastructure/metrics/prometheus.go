// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "reelgate"

var (
	// CacheOperationsTotal tracks cache adapter operations.
	// Labels:
	//   - operation: get, set, delete, scan
	//   - status: hit, miss, success, error
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Total number of cache operations",
		},
		[]string{"operation", "status"},
	)

	// UpstreamRequestsTotal tracks requests to the catalog API by outcome.
	// Labels:
	//   - outcome: success, http_error, network_error, rate_limited
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Total number of upstream catalog API requests",
		},
		[]string{"outcome"},
	)

	// UpstreamRetriesTotal tracks retried upstream attempts.
	// Labels:
	//   - reason: rate_limited, server_error, network_error
	UpstreamRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_retries_total",
			Help:      "Total number of upstream request retries",
		},
		[]string{"reason"},
	)

	// FetchesTotal tracks orchestrated fetches by how they were served.
	// Labels:
	//   - result: cache_hit, upstream, stale_primary, stale_shadow, error
	FetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "Total number of cache-first fetches by result",
		},
		[]string{"result"},
	)

	// SingleflightRequestsTotal tracks in-flight request collapsing.
	// Labels:
	//   - result: initiated (new execution), shared (reused result)
	SingleflightRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "singleflight_requests_total",
			Help:      "Total number of singleflight requests",
		},
		[]string{"result"},
	)
)

// Cache operation status constants.
const (
	CacheStatusHit     = "hit"
	CacheStatusMiss    = "miss"
	CacheStatusSuccess = "success"
	CacheStatusError   = "error"
)

// Cache operation type constants.
const (
	CacheOpGet    = "get"
	CacheOpSet    = "set"
	CacheOpDelete = "delete"
	CacheOpScan   = "scan"
)

// Upstream outcome constants.
const (
	UpstreamOutcomeSuccess      = "success"
	UpstreamOutcomeHTTPError    = "http_error"
	UpstreamOutcomeNetworkError = "network_error"
	UpstreamOutcomeRateLimited  = "rate_limited"
)

// Upstream retry reason constants.
const (
	RetryReasonRateLimited  = "rate_limited"
	RetryReasonServerError  = "server_error"
	RetryReasonNetworkError = "network_error"
)

// Fetch result constants.
const (
	FetchResultCacheHit     = "cache_hit"
	FetchResultUpstream     = "upstream"
	FetchResultStalePrimary = "stale_primary"
	FetchResultStaleShadow  = "stale_shadow"
	FetchResultError        = "error"
)

// Singleflight result constants.
const (
	SingleflightInitiated = "initiated"
	SingleflightShared    = "shared"
)
