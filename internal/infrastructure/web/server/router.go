package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "p2p-volume-tracker/internal/docs"
	"p2p-volume-tracker/internal/domain/interfaces"
	"p2p-volume-tracker/internal/infrastructure/metrics"
	"p2p-volume-tracker/internal/infrastructure/web/handlers"
	"p2p-volume-tracker/internal/infrastructure/web/middleware"
)

// PairRoute matches the per-exchange endpoints; "p2p" is the USDC alias
const PairRoute = "/api/{exchange:[a-z]+}-{asset:p2p|usdc|usdt}"

// RouterConfig selects optional routes
type RouterConfig struct {
	StreamEnabled  bool
	StreamInterval time.Duration

	// BaseContext bounds long-lived streams; cancel it on shutdown
	BaseContext context.Context
}

// NewRouter wires every HTTP route and wraps them in the middleware chain
func NewRouter(service interfaces.AggregationService, cfg RouterConfig) http.Handler {
	exchangeHandler := handlers.NewExchangeHandler(service)
	healthHandler := handlers.NewHealthHandler()

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(exchangeHandler.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(exchangeHandler.MethodNotAllowed)

	r.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/api/all-exchanges", exchangeHandler.GetAllExchanges).Methods(http.MethodGet)
	if cfg.StreamEnabled {
		streamHandler := handlers.NewStreamHandler(cfg.BaseContext, service, cfg.StreamInterval)
		r.HandleFunc("/api/stream", streamHandler.Stream).Methods(http.MethodGet)
	}
	r.HandleFunc(PairRoute, exchangeHandler.GetPair).Methods(http.MethodGet, http.MethodPost)

	r.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Handle("/docs", http.RedirectHandler("/swagger/", http.StatusMovedPermanently))

	// Outermost first: recovery, CORS, tracing, metrics
	var handler http.Handler = r
	handler = metrics.HTTPMetricsMiddleware(handler)
	handler = middleware.RequestTracingMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)
	handler = middleware.RecoveryMiddleware(handler)

	return handler
}
