package logging

import (
	"context"
	"time"
)

// Fields representa campos estructurados para logs
type Fields map[string]interface{}

// Campos estándar para logs
const (
	FieldRequestID  = "request_id"
	FieldError      = "error"
	FieldErrorKind  = "error_kind"
	FieldDuration   = "duration_ms"
	FieldStatusCode = "status_code"
	FieldEvent      = "event"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldUserAgent  = "user_agent"
	FieldRemoteIP   = "remote_ip"
)

// Campos para proveedores P2P
const (
	FieldExchange = "exchange"
	FieldAsset    = "asset"
	FieldPair     = "pair"
	FieldURL      = "url"
	FieldOrders   = "orders"
	FieldVolume   = "volume"
	FieldAvgPrice = "avg_price"
	FieldFallback = "fallback"
)

type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	StartTimeKey contextKey = "start_time"
)

// WithRequestID stores the request id in ctx
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// WithStartTime stores the request start time in ctx
func WithStartTime(ctx context.Context, startTime time.Time) context.Context {
	return context.WithValue(ctx, StartTimeKey, startTime)
}

// GetRequestID extracts request ID from context
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// GetStartTime extracts start time from context
func GetStartTime(ctx context.Context) time.Time {
	if ctx == nil {
		return time.Time{}
	}
	if startTime, ok := ctx.Value(StartTimeKey).(time.Time); ok {
		return startTime
	}
	return time.Time{}
}

func durationMs(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}
