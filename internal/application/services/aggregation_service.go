package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"p2p-volume-tracker/internal/domain/entities"
	"p2p-volume-tracker/internal/domain/interfaces"
	"p2p-volume-tracker/internal/infrastructure/logging"
	"p2p-volume-tracker/internal/infrastructure/metrics"
)

// ErrAggregationFailed is returned when the merge itself breaks, as opposed
// to individual pairs failing
var ErrAggregationFailed = errors.New("failed to fetch exchange data")

// aggregationService implements the AggregationService interface
type aggregationService struct {
	provider       interfaces.Provider
	pairs          []entities.Pair
	multiAsset     bool
	maxConcurrency int
}

// Option configures the aggregation service
type Option func(*aggregationService)

// WithMaxConcurrency bounds in-flight provider calls; 0 means unlimited
func WithMaxConcurrency(n int) Option {
	return func(s *aggregationService) {
		s.maxConcurrency = n
	}
}

// NewAggregationService creates a service over a fixed pair list. Pairs
// must be supported by the provider and produce unique keys.
func NewAggregationService(provider interfaces.Provider, pairs []entities.Pair, opts ...Option) (interfaces.AggregationService, error) {
	s := &aggregationService{
		provider:   provider,
		pairs:      append([]entities.Pair(nil), pairs...),
		multiAsset: isMultiAsset(pairs),
	}
	for _, opt := range opts {
		opt(s)
	}

	seen := make(map[string]entities.Pair, len(pairs))
	for _, pair := range s.pairs {
		if !provider.Supports(pair) {
			return nil, fmt.Errorf("%w: %s", entities.ErrUnsupportedPair, pair)
		}
		key := pair.Key(s.multiAsset)
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("pairs %s and %s share key %q", prev, pair, key)
		}
		seen[key] = pair
	}

	return s, nil
}

func (s *aggregationService) Pairs() []entities.Pair {
	return append([]entities.Pair(nil), s.pairs...)
}

// Aggregate fetches every pair concurrently and waits for all of them to
// settle. Failed pairs are logged and omitted; only a broken merge errors.
func (s *aggregationService) Aggregate(ctx context.Context) (resp entities.AggregateResponse, err error) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			metrics.RecordAggregationFailure()
			logging.Error(ctx, "Aggregation panicked", logging.Fields{
				logging.FieldError: fmt.Sprint(r),
			})
			resp, err = nil, fmt.Errorf("%w: %v", ErrAggregationFailed, r)
		}
	}()

	results := make([]*entities.ExchangeMetrics, len(s.pairs))
	failures := make([]error, len(s.pairs))

	// Plain Group: one failure must not cancel its siblings
	var g errgroup.Group
	if s.maxConcurrency > 0 {
		g.SetLimit(s.maxConcurrency)
	}

	for i, pair := range s.pairs {
		g.Go(func() error {
			results[i], failures[i] = s.fetchIsolated(ctx, pair)
			return nil
		})
	}
	_ = g.Wait()

	resp = s.merge(ctx, results, failures)

	duration := time.Since(start)
	metrics.RecordAggregation(len(resp), duration.Seconds())
	logging.LogAggregation(ctx, len(s.pairs), len(resp), duration)

	return resp, nil
}

// fetchIsolated turns a provider panic into a failure of that pair alone
func (s *aggregationService) fetchIsolated(ctx context.Context, pair entities.Pair) (m *entities.ExchangeMetrics, err error) {
	defer func() {
		if r := recover(); r != nil {
			m = nil
			err = entities.NewProviderError(pair, entities.ErrProviderUnreachable, fmt.Errorf("provider panic: %v", r))
		}
	}()
	return s.provider.Fetch(ctx, pair)
}

// merge keys results by topology position, so settle order never matters
func (s *aggregationService) merge(ctx context.Context, results []*entities.ExchangeMetrics, failures []error) entities.AggregateResponse {
	resp := make(entities.AggregateResponse, len(s.pairs))

	for i, pair := range s.pairs {
		if failures[i] != nil {
			logging.LogPairOmitted(ctx, pair.String(), entities.ErrorKind(failures[i]), failures[i])
			continue
		}
		if results[i] == nil {
			logging.LogPairOmitted(ctx, pair.String(), entities.ErrorKind(entities.ErrProviderEmptyResult), entities.ErrProviderEmptyResult)
			continue
		}

		record := *results[i]
		if s.multiAsset {
			record.Asset = pair.Asset
		}
		resp[pair.Key(s.multiAsset)] = &record
	}

	return resp
}

// FetchPair serves the per-exchange endpoints
func (s *aggregationService) FetchPair(ctx context.Context, pair entities.Pair) (*entities.ExchangeMetrics, error) {
	if !s.provider.Supports(pair) {
		return nil, entities.NewProviderError(pair, entities.ErrUnsupportedPair, fmt.Errorf("%w: %s", entities.ErrUnsupportedPair, pair))
	}

	m, err := s.fetchIsolated(ctx, pair)
	if err != nil {
		logging.WarnWithError(ctx, "Pair fetch failed", err, logging.Fields{
			logging.FieldPair:      pair.String(),
			logging.FieldErrorKind: entities.ErrorKind(err),
		})
		return nil, err
	}
	if m == nil {
		return nil, entities.NewProviderError(pair, entities.ErrProviderEmptyResult, nil)
	}
	return m, nil
}
