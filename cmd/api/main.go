// @title P2P Volume Tracker API
// @version 1.0.0
// @description Aggregates public P2P order-book snapshots from Binance, Bybit, OKX and KuCoin.
// @host localhost:3001
// @BasePath /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"p2p-volume-tracker/internal/application/services"
	"p2p-volume-tracker/internal/infrastructure/config"
	"p2p-volume-tracker/internal/infrastructure/exchange/fallback"
	"p2p-volume-tracker/internal/infrastructure/exchange/p2p"
	"p2p-volume-tracker/internal/infrastructure/logging"
	"p2p-volume-tracker/internal/infrastructure/metrics"
	"p2p-volume-tracker/internal/infrastructure/profiling"
	"p2p-volume-tracker/internal/infrastructure/web/server"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal(ctx, "Failed to load configuration", err)
	}

	logging.Configure(cfg.Logging.Level, cfg.Logging.Format)

	logging.Info(ctx, "Starting P2P Volume Tracker", logging.Fields{
		"version":  cfg.App.Version,
		"port":     cfg.Server.Port,
		"topology": cfg.Aggregation.Topology,
		"fallback": cfg.Fallback.Mode,
		"base_url": cfg.App.BaseURL,
	})

	stopProfiler, err := profiling.Start(cfg.Profiling, map[string]string{
		"topology": cfg.Aggregation.Topology,
	})
	if err != nil {
		logging.WarnWithError(ctx, "Profiling disabled", err, nil)
		stopProfiler = func() error { return nil }
	}
	defer func() {
		_ = stopProfiler()
	}()

	strategy, err := fallback.New(cfg.Fallback)
	if err != nil {
		logging.Fatal(ctx, "Failed to create fallback strategy", err)
	}

	provider := p2p.NewProvider(
		p2p.NewClient(cfg.Exchange),
		p2p.Descriptors(cfg.Exchange.Endpoints),
		p2p.WithFallback(strategy),
	)

	pairs, err := services.PairsFor(cfg.Aggregation.Topology)
	if err != nil {
		logging.Fatal(ctx, "Invalid topology", err)
	}

	aggregation, err := services.NewAggregationService(provider, pairs,
		services.WithMaxConcurrency(cfg.Aggregation.MaxConcurrency),
	)
	if err != nil {
		logging.Fatal(ctx, "Failed to create aggregation service", err)
	}

	metrics.SetApplicationInfo(cfg.App.Version, cfg.Aggregation.Topology, strategy.Name())

	streamCtx, closeStreams := context.WithCancel(ctx)
	defer closeStreams()

	router := server.NewRouter(aggregation, server.RouterConfig{
		StreamEnabled:  cfg.Stream.Enabled,
		StreamInterval: cfg.Stream.Interval,
		BaseContext:    streamCtx,
	})
	httpServer := server.NewServer(router, cfg.Server)
	httpServer.OnShutdown(closeStreams)

	go func() {
		if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal(ctx, "Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info(ctx, "Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logging.ErrorWithError(ctx, "Server forced to shutdown", err, nil)
	}

	logging.Info(ctx, "Server shutdown completed", nil)
}
