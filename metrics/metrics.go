// Package metrics provides Prometheus metrics for the Reddit wiki MCP server.
// It tracks tool calls, Reddit API latency and status, and wiki write operations.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const (
	Namespace = "reddit_wiki_mcp"
)

var (
	// RequestsTotal counts total MCP tool calls by tool name and status
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "requests_total",
		Help:      "Total number of MCP tool calls",
	}, []string{"tool", "status"})

	// RequestDuration measures tool call latency distribution
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "request_duration_seconds",
		Help:      "Request latency distribution by tool",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"tool"})

	// RequestInFlight tracks currently executing tool calls
	RequestInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "requests_in_flight",
		Help:      "Number of requests currently being processed",
	}, []string{"tool"})

	// RedditAPILatency measures Reddit API call latency by method and endpoint
	RedditAPILatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "reddit_api_latency_seconds",
		Help:      "Reddit API call latency by method and endpoint",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "endpoint"})

	// RedditAPIRequestsTotal counts Reddit API requests by HTTP status
	RedditAPIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "reddit_api_requests_total",
		Help:      "Total Reddit API requests by method, endpoint and status",
	}, []string{"method", "endpoint", "status"})

	// EditOperations counts wiki write operations by type
	EditOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "wiki_edit_operations_total",
		Help:      "Wiki write operations by type and status",
	}, []string{"operation", "status"})

	// CircuitBreakerOpens counts transitions of the transport circuit breaker to open
	CircuitBreakerOpens = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "circuit_breaker_open_total",
		Help:      "Number of times the Reddit API circuit breaker opened",
	})

	// RateLimitWaits counts requests that had to wait for a transport slot
	RateLimitWaits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "rate_limit_waits_total",
		Help:      "Requests that waited for the concurrency semaphore",
	})

	// PanicsRecovered counts recovered panics
	PanicsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "panics_recovered_total",
		Help:      "Number of panics recovered in tool handlers",
	}, []string{"tool"})
)

// RecordRequest records a completed tool call with its duration and status
func RecordRequest(tool string, duration float64, success bool) {
	RequestsTotal.WithLabelValues(tool, statusLabel(success)).Inc()
	RequestDuration.WithLabelValues(tool).Observe(duration)
}

// RecordAPICall records a Reddit API call. statusCode is 0 when no response arrived.
func RecordAPICall(method, endpoint string, duration float64, statusCode int) {
	status := "error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	RedditAPIRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RedditAPILatency.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordEdit records a wiki write operation (edit, hide, revert, settings, editor)
func RecordEdit(operation string, success bool) {
	EditOperations.WithLabelValues(operation, statusLabel(success)).Inc()
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "error"
}
