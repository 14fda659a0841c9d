package profiling

import (
	"context"
	"fmt"

	"github.com/grafana/pyroscope-go"

	"p2p-volume-tracker/internal/infrastructure/config"
	"p2p-volume-tracker/internal/infrastructure/logging"
)

// Stop flushes and stops the profiler
type Stop func() error

// Start begins continuous profiling when enabled. The returned Stop is
// always safe to call.
func Start(cfg config.ProfilingConfig, tags map[string]string) (Stop, error) {
	if !cfg.Enabled {
		return func() error { return nil }, nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.ApplicationName,
		ServerAddress:   cfg.ServerAddress,
		Tags:            tags,
		Logger:          logging.GetLogger(),
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("pyroscope start failed: %w", err)
	}

	logging.Info(context.Background(), "Continuous profiling enabled", logging.Fields{
		"server_address":   cfg.ServerAddress,
		"application_name": cfg.ApplicationName,
	})

	return profiler.Stop, nil
}
