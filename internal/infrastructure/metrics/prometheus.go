package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the P2P volume tracker
var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "p2p_tracker_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "p2p_tracker_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPResponseSizeBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "p2p_tracker_http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000},
		},
		[]string{"method", "path"},
	)

	// Upstream (exchange) Metrics
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "p2p_tracker_upstream_requests_total",
			Help: "Total number of requests sent to exchange P2P endpoints",
		},
		[]string{"exchange", "asset", "status_code"}, // status_code: HTTP code or "error"
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "p2p_tracker_upstream_request_duration_seconds",
			Help:    "Exchange P2P request duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0},
		},
		[]string{"exchange", "asset"},
	)

	UpstreamRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "p2p_tracker_upstream_retries_total",
			Help: "Total number of upstream retry attempts",
		},
		[]string{"exchange", "asset", "attempt"},
	)

	// Business Metrics
	PairOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "p2p_tracker_pair_outcomes_total",
			Help: "Outcome of each pair fetch",
		},
		[]string{"pair", "outcome"}, // outcome: served/synthetic or an error kind
	)

	PairVolume = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "p2p_tracker_pair_volume",
			Help: "Latest summed listing volume per pair",
		},
		[]string{"pair"},
	)

	PairAvgPrice = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "p2p_tracker_pair_avg_price",
			Help: "Latest average listing price per pair",
		},
		[]string{"pair"},
	)

	PairOrders = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "p2p_tracker_pair_orders",
			Help: "Latest listing count per pair",
		},
		[]string{"pair"},
	)

	ReportingPairs = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "p2p_tracker_reporting_pairs",
			Help: "Pairs present in the last merged response",
		},
	)

	AggregationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "p2p_tracker_aggregation_duration_seconds",
			Help:    "Duration of a full fan-out and merge",
			Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
		},
	)

	AggregationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "p2p_tracker_aggregation_failures_total",
			Help: "Merges that failed as a whole",
		},
	)

	FallbackActivationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "p2p_tracker_fallback_activations_total",
			Help: "Number of synthetic records produced by the fallback strategy",
		},
		[]string{"pair", "reason"},
	)

	// Stream Metrics
	StreamClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "p2p_tracker_stream_clients",
			Help: "Connected WebSocket stream clients",
		},
	)

	StreamMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "p2p_tracker_stream_messages_total",
			Help: "Snapshots pushed over the WebSocket stream",
		},
		[]string{"result"}, // result: sent/error
	)

	// System Metrics
	ApplicationInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "p2p_tracker_application_info",
			Help: "Application information",
		},
		[]string{"version", "topology", "fallback"},
	)
)

// RecordHTTPRequest records HTTP request metrics
func RecordHTTPRequest(method, path string, statusCode int, duration float64, responseSize int64) {
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
	if responseSize > 0 {
		HTTPResponseSizeBytes.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// RecordUpstreamRequest records one exchange call; statusCode 0 means no response
func RecordUpstreamRequest(exchange, asset string, statusCode int, duration float64) {
	status := "error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	UpstreamRequestsTotal.WithLabelValues(exchange, asset, status).Inc()
	UpstreamRequestDuration.WithLabelValues(exchange, asset).Observe(duration)
}

// RecordUpstreamRetry records upstream retry attempts
func RecordUpstreamRetry(exchange, asset string, attempt int) {
	UpstreamRetries.WithLabelValues(exchange, asset, strconv.Itoa(attempt)).Inc()
}

// RecordPairServed updates the per-pair gauges after a successful fetch
func RecordPairServed(pair string, volume float64, orders int, avgPrice float64, synthetic bool) {
	outcome := "served"
	if synthetic {
		outcome = "synthetic"
	}
	PairOutcomesTotal.WithLabelValues(pair, outcome).Inc()
	PairVolume.WithLabelValues(pair).Set(volume)
	PairOrders.WithLabelValues(pair).Set(float64(orders))
	PairAvgPrice.WithLabelValues(pair).Set(avgPrice)
}

// RecordPairOmitted counts a pair that produced no record
func RecordPairOmitted(pair, kind string) {
	PairOutcomesTotal.WithLabelValues(pair, kind).Inc()
}

// RecordAggregation records a completed merge
func RecordAggregation(reporting int, duration float64) {
	ReportingPairs.Set(float64(reporting))
	AggregationDuration.Observe(duration)
}

// RecordAggregationFailure counts merges that returned an error
func RecordAggregationFailure() {
	AggregationFailures.Inc()
}

// RecordFallbackActivation records a synthetic record being produced
func RecordFallbackActivation(pair, reason string) {
	FallbackActivationsTotal.WithLabelValues(pair, reason).Inc()
}

// UpdateStreamClients adjusts the connected stream client gauge
func UpdateStreamClients(delta int) {
	StreamClients.Add(float64(delta))
}

// RecordStreamMessage records a stream push attempt
func RecordStreamMessage(ok bool) {
	result := "error"
	if ok {
		result = "sent"
	}
	StreamMessagesTotal.WithLabelValues(result).Inc()
}

// SetApplicationInfo sets application information
func SetApplicationInfo(version, topology, fallback string) {
	ApplicationInfo.WithLabelValues(version, topology, fallback).Set(1)
}
