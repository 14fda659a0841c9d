package metrics

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"
)

// HTTPMetricsMiddleware collects HTTP metrics for Prometheus
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()

		wrapped := &responseWriterMetrics{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		normalizedPath := normalizePath(r.URL.Path)

		next.ServeHTTP(wrapped, r)

		RecordHTTPRequest(r.Method, normalizedPath, wrapped.statusCode, time.Since(startTime).Seconds(), wrapped.written)
	})
}

// responseWriterMetrics wraps http.ResponseWriter to capture metrics
type responseWriterMetrics struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

// WriteHeader captures the status code
func (rw *responseWriterMetrics) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Write captures the response size
func (rw *responseWriterMetrics) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// Hijack lets the WebSocket upgrader take over the connection
func (rw *responseWriterMetrics) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	rw.statusCode = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (rw *responseWriterMetrics) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// normalizePath keeps label cardinality bounded: per-pair routes keep their
// (finite) name, everything else collapses
func normalizePath(path string) string {
	if path == "/" {
		return "/"
	}

	path = strings.TrimSuffix(path, "/")

	switch {
	case path == "/health", path == "/metrics":
		return path
	case path == "/api/all-exchanges", path == "/api/stream":
		return path
	case strings.HasPrefix(path, "/swagger"):
		return "/swagger"
	case strings.HasPrefix(path, "/api/"):
		name := strings.TrimPrefix(path, "/api/")
		if isPairRoute(name) {
			return path
		}
		return "/api/*"
	default:
		return "/unknown"
	}
}

var knownRouteExchanges = []string{"binance", "bybit", "okx", "kucoin"}

func isPairRoute(name string) bool {
	for _, exchange := range knownRouteExchanges {
		for _, suffix := range []string{"-p2p", "-usdc", "-usdt"} {
			if name == exchange+suffix {
				return true
			}
		}
	}
	return false
}
