package p2p

import (
	"context"
	"errors"
	"fmt"
	"time"

	"p2p-volume-tracker/internal/domain/entities"
	"p2p-volume-tracker/internal/domain/interfaces"
	"p2p-volume-tracker/internal/infrastructure/logging"
	"p2p-volume-tracker/internal/infrastructure/metrics"
)

// RawFetcher is the transport half of a provider
type RawFetcher interface {
	FetchRaw(ctx context.Context, d Descriptor, asset entities.Asset) ([]byte, error)
}

// Provider composes fetch, normalize and fallback for every known exchange
type Provider struct {
	fetcher     RawFetcher
	descriptors map[entities.ExchangeID]Descriptor
	fallback    interfaces.FallbackStrategy
	now         func() time.Time
}

var _ interfaces.Provider = (*Provider)(nil)

// Option configures a Provider
type Option func(*Provider)

// WithFallback sets the strategy consulted by exchanges that allow fallback
func WithFallback(strategy interfaces.FallbackStrategy) Option {
	return func(p *Provider) {
		p.fallback = strategy
	}
}

// WithClock overrides the normalization timestamp source
func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		p.now = now
	}
}

// NewProvider creates a provider over the given descriptor table
func NewProvider(fetcher RawFetcher, descriptors []Descriptor, opts ...Option) *Provider {
	p := &Provider{
		fetcher:     fetcher,
		descriptors: make(map[entities.ExchangeID]Descriptor, len(descriptors)),
		now:         time.Now,
	}
	for _, d := range descriptors {
		p.descriptors[d.Exchange] = d
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Supports reports whether the pair has a descriptor serving its asset
func (p *Provider) Supports(pair entities.Pair) bool {
	d, ok := p.descriptors[pair.Exchange]
	return ok && d.Supports(pair.Asset)
}

// Fetch returns metrics for one pair or a *entities.ProviderError
func (p *Provider) Fetch(ctx context.Context, pair entities.Pair) (*entities.ExchangeMetrics, error) {
	d, ok := p.descriptors[pair.Exchange]
	if !ok || !d.Supports(pair.Asset) {
		err := fmt.Errorf("%w: %s", entities.ErrUnsupportedPair, pair)
		return nil, entities.NewProviderError(pair, entities.ErrUnsupportedPair, err)
	}

	m, err := p.fetchLive(ctx, d, pair)
	if err != nil && d.AllowsFallback && p.fallback != nil {
		m, err = p.applyFallback(ctx, pair, err)
	}

	if err != nil {
		kind := kindOf(err)
		metrics.RecordPairOmitted(pair.String(), entities.ErrorKind(err))
		return nil, entities.NewProviderError(pair, kind, err)
	}

	if pair.Asset != entities.DefaultAsset {
		m.Asset = pair.Asset
	}

	metrics.RecordPairServed(pair.String(), m.Volume, m.Orders, m.AvgPrice, m.IsSynthetic())
	logging.LogPairServed(ctx, pair.String(), m.Orders, m.Volume, m.AvgPrice, m.IsSynthetic())
	return m, nil
}

func (p *Provider) fetchLive(ctx context.Context, d Descriptor, pair entities.Pair) (*entities.ExchangeMetrics, error) {
	raw, err := p.fetcher.FetchRaw(ctx, d, pair.Asset)
	if err != nil {
		return nil, err
	}
	return Normalize(d, raw, p.now())
}

func (p *Provider) applyFallback(ctx context.Context, pair entities.Pair, cause error) (*entities.ExchangeMetrics, error) {
	m, err := p.fallback.Recover(pair, cause)
	if err != nil {
		return nil, err
	}

	reason := entities.ErrorKind(cause)
	metrics.RecordFallbackActivation(pair.String(), reason)
	logging.Info(ctx, "Serving fallback data", logging.Fields{
		logging.FieldPair:      pair.String(),
		logging.FieldFallback:  p.fallback.Name(),
		logging.FieldErrorKind: reason,
	})
	return m, nil
}

var kinds = []error{
	entities.ErrProviderAuthRequired,
	entities.ErrProviderEmptyResult,
	entities.ErrUpstreamSchemaMismatch,
	entities.ErrProviderUnreachable,
	entities.ErrUnsupportedPair,
}

// kindOf picks the taxonomy sentinel carried by err; unknown failures count as unreachable
func kindOf(err error) error {
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return entities.ErrProviderUnreachable
}
