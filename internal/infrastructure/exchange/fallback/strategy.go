package fallback

import (
	"context"
	"fmt"

	"p2p-volume-tracker/internal/domain/interfaces"
	"p2p-volume-tracker/internal/infrastructure/config"
	"p2p-volume-tracker/internal/infrastructure/logging"
)

// New builds the strategy selected by configuration
func New(cfg config.FallbackConfig) (interfaces.FallbackStrategy, error) {
	ctx := context.Background()

	switch cfg.Mode {
	case "", config.FallbackAbsent:
		logging.Info(ctx, "Fallback disabled, unauthenticated providers report absence", logging.Fields{
			logging.FieldFallback: config.FallbackAbsent,
		})
		return NewAbsent(), nil

	case config.FallbackSynthetic:
		logging.Warn(ctx, "Synthetic fallback enabled, placeholder records will carry a note", logging.Fields{
			logging.FieldFallback: config.FallbackSynthetic,
			"seed":                cfg.Seed,
		})
		return NewSynthetic(cfg.Seed), nil

	default:
		return nil, fmt.Errorf("unsupported fallback mode: %s", cfg.Mode)
	}
}
