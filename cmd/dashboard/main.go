package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"p2p-volume-tracker/internal/application/services"
	"p2p-volume-tracker/internal/dashboard"
	"p2p-volume-tracker/internal/infrastructure/config"
	"p2p-volume-tracker/internal/infrastructure/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal(ctx, "Failed to load configuration", err)
	}

	// stdout belongs to the board
	logging.SetOutput(os.Stderr)
	logging.Configure(cfg.Logging.Level, cfg.Logging.Format)

	pairs, err := services.PairsFor(cfg.Aggregation.Topology)
	if err != nil {
		logging.Fatal(ctx, "Invalid topology", err)
	}

	logging.Info(ctx, "Starting P2P dashboard", logging.Fields{
		"base_url":      cfg.App.BaseURL,
		"poll_interval": cfg.Dashboard.PollInterval.String(),
	})

	board := dashboard.New(
		dashboard.NewClient(cfg.App.BaseURL, cfg.Dashboard.RequestTimeout),
		services.MergeKeys(pairs),
		os.Stdout,
		cfg.Dashboard.PollInterval,
		dashboard.WithClearScreen(isTerminal(os.Stdout)),
	)

	if err := board.Run(ctx); err != nil {
		logging.Fatal(ctx, "Dashboard stopped", err)
	}
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
