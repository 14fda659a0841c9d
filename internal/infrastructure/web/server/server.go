package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"p2p-volume-tracker/internal/infrastructure/config"
	"p2p-volume-tracker/internal/infrastructure/logging"
)

// Server encapsulates HTTP server configuration
type Server struct {
	httpServer *http.Server
	port       int
}

// NewServer creates a new server instance
func NewServer(handler http.Handler, cfg config.ServerConfig) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       60 * time.Second,
		},
		port: cfg.Port,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	ctx := context.Background()

	logging.Info(ctx, "HTTP server starting", logging.Fields{
		"port": s.port,
	})

	logging.Info(ctx, "Available endpoints", logging.Fields{
		"endpoints": []string{
			fmt.Sprintf("POST http://localhost:%d/api/binance-p2p", s.port),
			fmt.Sprintf("POST http://localhost:%d/api/bybit-p2p", s.port),
			fmt.Sprintf("POST http://localhost:%d/api/okx-p2p", s.port),
			fmt.Sprintf("POST http://localhost:%d/api/kucoin-p2p", s.port),
			fmt.Sprintf("POST http://localhost:%d/api/binance-usdt", s.port),
			fmt.Sprintf("POST http://localhost:%d/api/bybit-usdt", s.port),
			fmt.Sprintf("GET  http://localhost:%d/api/all-exchanges", s.port),
			fmt.Sprintf("GET  http://localhost:%d/api/stream", s.port),
			fmt.Sprintf("GET  http://localhost:%d/health", s.port),
			fmt.Sprintf("GET  http://localhost:%d/metrics", s.port),
			fmt.Sprintf("GET  http://localhost:%d/swagger/", s.port),
		},
	})

	return s.httpServer.ListenAndServe()
}

// OnShutdown registers f to run when Stop begins. Hijacked connections
// such as WebSocket streams are not tracked by Shutdown and need this.
func (s *Server) OnShutdown(f func()) {
	s.httpServer.RegisterOnShutdown(f)
}

// Stop stops the HTTP server gracefully
func (s *Server) Stop(ctx context.Context) error {
	logging.Info(ctx, "Stopping HTTP server gracefully", logging.Fields{
		"port": s.port,
	})

	return s.httpServer.Shutdown(ctx)
}

// GetPort returns the configured port
func (s *Server) GetPort() int {
	return s.port
}
