package interfaces

import (
	"context"

	"p2p-volume-tracker/internal/domain/entities"
)

// Provider fetches and normalizes one (exchange, asset) pair.
// Failures are returned as *entities.ProviderError.
type Provider interface {
	Fetch(ctx context.Context, pair entities.Pair) (*entities.ExchangeMetrics, error)
	Supports(pair entities.Pair) bool
}

// FallbackStrategy decides what a provider without a public endpoint reports
// when its call produced no usable data. Returning an error omits the pair.
type FallbackStrategy interface {
	Recover(pair entities.Pair, cause error) (*entities.ExchangeMetrics, error)
	Name() string
}
