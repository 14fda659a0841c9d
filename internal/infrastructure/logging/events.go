package logging

import (
	"context"
	"time"
)

// LogHTTPRequest logs HTTP request information
func LogHTTPRequest(ctx context.Context, method, path, userAgent, remoteIP string) {
	Info(ctx, "HTTP request received", Fields{
		FieldMethod:    method,
		FieldPath:      path,
		FieldUserAgent: userAgent,
		FieldRemoteIP:  remoteIP,
		FieldEvent:     "http_request",
	})
}

// LogHTTPResponse logs HTTP response information, leveled by status code
func LogHTTPResponse(ctx context.Context, method, path string, statusCode int, responseSize int64) {
	fields := Fields{
		FieldMethod:     method,
		FieldPath:       path,
		FieldStatusCode: statusCode,
		"response_size": responseSize,
		FieldEvent:      "http_response",
	}
	if startTime := GetStartTime(ctx); !startTime.IsZero() {
		fields[FieldDuration] = durationMs(time.Since(startTime))
	}

	switch {
	case statusCode >= 500:
		Error(ctx, "HTTP response sent", fields)
	case statusCode >= 400:
		Warn(ctx, "HTTP response sent", fields)
	default:
		Info(ctx, "HTTP response sent", fields)
	}
}

// LogUpstreamRequest logs an outbound call to an exchange
func LogUpstreamRequest(ctx context.Context, exchange, asset, url string) {
	Debug(ctx, "Making request to P2P API", Fields{
		FieldExchange: exchange,
		FieldAsset:    asset,
		FieldURL:      url,
		FieldEvent:    "upstream_request",
	})
}

// LogUpstreamResponse logs a completed outbound call
func LogUpstreamResponse(ctx context.Context, exchange, asset string, statusCode int, duration time.Duration) {
	fields := Fields{
		FieldExchange:   exchange,
		FieldAsset:      asset,
		FieldStatusCode: statusCode,
		FieldDuration:   durationMs(duration),
		FieldEvent:      "upstream_response",
	}
	if statusCode >= 400 {
		Warn(ctx, "P2P API response received", fields)
		return
	}
	Debug(ctx, "P2P API response received", fields)
}

// LogPairOmitted logs why a pair produced no record
func LogPairOmitted(ctx context.Context, pair, kind string, err error) {
	WarnWithError(ctx, "Pair omitted from merged response", err, Fields{
		FieldPair:      pair,
		FieldErrorKind: kind,
		FieldEvent:     "pair_omitted",
	})
}

// LogPairServed logs a successfully normalized pair
func LogPairServed(ctx context.Context, pair string, orders int, volume, avgPrice float64, synthetic bool) {
	Info(ctx, "P2P data normalized", Fields{
		FieldPair:     pair,
		FieldOrders:   orders,
		FieldVolume:   volume,
		FieldAvgPrice: avgPrice,
		FieldFallback: synthetic,
		FieldEvent:    "pair_served",
	})
}

// LogAggregation logs the outcome of one merged-endpoint cycle
func LogAggregation(ctx context.Context, requested, reported int, duration time.Duration) {
	Info(ctx, "Aggregated data from exchange-asset pairs", Fields{
		"pairs_requested": requested,
		"pairs_reported":  reported,
		FieldDuration:     durationMs(duration),
		FieldEvent:        "aggregation",
	})
}
