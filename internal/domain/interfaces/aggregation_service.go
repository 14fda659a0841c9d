package interfaces

import (
	"context"

	"p2p-volume-tracker/internal/domain/entities"
)

// AggregationService define los casos de uso expuestos por la capa HTTP
type AggregationService interface {
	// Aggregate fans out to every configured pair and merges the successful ones
	Aggregate(ctx context.Context) (entities.AggregateResponse, error)

	// FetchPair runs a single provider call for the per-exchange endpoints
	FetchPair(ctx context.Context, pair entities.Pair) (*entities.ExchangeMetrics, error)

	// Pairs returns the configured topology in merge order
	Pairs() []entities.Pair
}
