package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"p2p-volume-tracker/internal/domain/entities"
	"p2p-volume-tracker/internal/infrastructure/config"
	"p2p-volume-tracker/internal/infrastructure/exchange/p2p"
)

// MockProvider is a mock implementation of interfaces.Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Fetch(ctx context.Context, pair entities.Pair) (*entities.ExchangeMetrics, error) {
	args := m.Called(pair)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ExchangeMetrics), args.Error(1)
}

func (m *MockProvider) Supports(pair entities.Pair) bool {
	return !(pair.Asset == entities.AssetUSDT && (pair.Exchange == entities.ExchangeOKX || pair.Exchange == entities.ExchangeKuCoin))
}

var testTime = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

func metricsFor(exchange entities.ExchangeID, volume float64, orders int, avg float64) *entities.ExchangeMetrics {
	return entities.NewExchangeMetrics(exchange, volume, orders, avg, testTime)
}

func dualPairs(t *testing.T) []entities.Pair {
	pairs, err := PairsFor(config.TopologyDual)
	require.NoError(t, err)
	return pairs
}

func stubAll(provider *MockProvider, pairs []entities.Pair) {
	for i, pair := range pairs {
		provider.On("Fetch", pair).Return(metricsFor(pair.Exchange, float64(1000*(i+1)), i+1, 1.0), nil)
	}
}

func TestPairsFor(t *testing.T) {
	single, err := PairsFor(config.TopologySingle)
	require.NoError(t, err)
	assert.Len(t, single, 4)
	assert.False(t, isMultiAsset(single))

	dual, err := PairsFor(config.TopologyDual)
	require.NoError(t, err)
	assert.Len(t, dual, 6)
	assert.True(t, isMultiAsset(dual))

	_, err = PairsFor("triple")
	assert.Error(t, err)
}

func TestMergeKeys(t *testing.T) {
	single, err := PairsFor(config.TopologySingle)
	require.NoError(t, err)
	assert.Equal(t, []string{"binance", "bybit", "okx", "kucoin"}, MergeKeys(single))

	dual, err := PairsFor(config.TopologyDual)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"binance-usdc", "bybit-usdc", "okx-usdc", "kucoin-usdc", "binance-usdt", "bybit-usdt",
	}, MergeKeys(dual))
}

func TestNewAggregationService_RejectsUnsupportedPair(t *testing.T) {
	_, err := NewAggregationService(new(MockProvider), []entities.Pair{
		entities.NewPair(entities.ExchangeOKX, entities.AssetUSDT),
	})
	assert.ErrorIs(t, err, entities.ErrUnsupportedPair)
}

func TestNewAggregationService_RejectsDuplicateKeys(t *testing.T) {
	pair := entities.NewPair(entities.ExchangeBinance, entities.AssetUSDC)
	_, err := NewAggregationService(new(MockProvider), []entities.Pair{pair, pair})
	assert.Error(t, err)
}

func TestAggregate_KeyNaming(t *testing.T) {
	t.Run("dual topology keys by exchange-asset", func(t *testing.T) {
		pairs := dualPairs(t)
		provider := new(MockProvider)
		stubAll(provider, pairs)

		svc, err := NewAggregationService(provider, pairs)
		require.NoError(t, err)

		resp, err := svc.Aggregate(t.Context())
		require.NoError(t, err)

		assert.Len(t, resp, 6)
		require.Contains(t, resp, "binance-usdt")
		assert.Equal(t, entities.AssetUSDT, resp["binance-usdt"].Asset)
		require.Contains(t, resp, "binance-usdc")
		assert.Equal(t, entities.AssetUSDC, resp["binance-usdc"].Asset)
		assert.NotContains(t, resp, "binance")
	})

	t.Run("single topology keys by bare exchange", func(t *testing.T) {
		pairs, err := PairsFor(config.TopologySingle)
		require.NoError(t, err)
		provider := new(MockProvider)
		stubAll(provider, pairs)

		svc, err := NewAggregationService(provider, pairs)
		require.NoError(t, err)

		resp, err := svc.Aggregate(t.Context())
		require.NoError(t, err)

		assert.Len(t, resp, 4)
		require.Contains(t, resp, "binance")
		assert.Empty(t, resp["binance"].Asset)
		assert.NotContains(t, resp, "binance-usdc")
	})
}

func TestAggregate_FailureIsolation(t *testing.T) {
	pairs := dualPairs(t)

	baselineProvider := new(MockProvider)
	stubAll(baselineProvider, pairs)
	baselineSvc, err := NewAggregationService(baselineProvider, pairs)
	require.NoError(t, err)
	baseline, err := baselineSvc.Aggregate(t.Context())
	require.NoError(t, err)

	for failing := range pairs {
		failingPair := pairs[failing]
		t.Run(failingPair.String(), func(t *testing.T) {
			provider := new(MockProvider)
			for i, pair := range pairs {
				if i == failing {
					provider.On("Fetch", pair).Return(nil, entities.NewProviderError(pair, entities.ErrProviderUnreachable, fmt.Errorf("dial tcp: connection refused")))
					continue
				}
				provider.On("Fetch", pair).Return(metricsFor(pair.Exchange, float64(1000*(i+1)), i+1, 1.0), nil)
			}

			svc, err := NewAggregationService(provider, pairs)
			require.NoError(t, err)
			resp, err := svc.Aggregate(t.Context())
			require.NoError(t, err)

			assert.Len(t, resp, len(pairs)-1)
			assert.NotContains(t, resp, failingPair.Key(true))
			for key, want := range baseline {
				if key == failingPair.Key(true) {
					continue
				}
				require.Contains(t, resp, key)
				assert.Equal(t, want, resp[key])
			}
		})
	}
}

// panickingProvider panics for one exchange and delegates the rest
type panickingProvider struct {
	*MockProvider
	exchange entities.ExchangeID
}

func (p *panickingProvider) Fetch(ctx context.Context, pair entities.Pair) (*entities.ExchangeMetrics, error) {
	if pair.Exchange == p.exchange {
		panic("boom")
	}
	return p.MockProvider.Fetch(ctx, pair)
}

func TestAggregate_PanickingProviderIsIsolated(t *testing.T) {
	pairs := dualPairs(t)
	inner := new(MockProvider)
	stubAll(inner, pairs)
	provider := &panickingProvider{MockProvider: inner, exchange: entities.ExchangeKuCoin}

	svc, err := NewAggregationService(provider, pairs)
	require.NoError(t, err)
	resp, err := svc.Aggregate(t.Context())

	require.NoError(t, err)
	assert.Len(t, resp, 5)
	assert.NotContains(t, resp, "kucoin-usdc")
}

func TestAggregate_AllFailingYieldsEmptyResponse(t *testing.T) {
	pairs := dualPairs(t)
	provider := new(MockProvider)
	for _, pair := range pairs {
		provider.On("Fetch", pair).Return(nil, entities.NewProviderError(pair, entities.ErrProviderEmptyResult, nil))
	}

	svc, err := NewAggregationService(provider, pairs)
	require.NoError(t, err)
	resp, err := svc.Aggregate(t.Context())

	require.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Empty(t, resp)
}

func TestAggregate_Idempotent(t *testing.T) {
	pairs := dualPairs(t)
	provider := new(MockProvider)
	stubAll(provider, pairs)

	svc, err := NewAggregationService(provider, pairs, WithMaxConcurrency(2))
	require.NoError(t, err)

	first, err := svc.Aggregate(t.Context())
	require.NoError(t, err)
	second, err := svc.Aggregate(t.Context())
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for key, a := range first {
		b := second[key]
		require.NotNil(t, b, key)
		assert.NotSame(t, a, b, "responses must not share records")
		assert.Equal(t, a.Volume, b.Volume)
		assert.Equal(t, a.Orders, b.Orders)
		assert.Equal(t, a.AvgPrice, b.AvgPrice)
		assert.Equal(t, a.Exchange, b.Exchange)
		assert.Equal(t, a.Asset, b.Asset)
	}
}

func TestFetchPair(t *testing.T) {
	pair := entities.NewPair(entities.ExchangeBybit, entities.AssetUSDC)
	provider := new(MockProvider)
	provider.On("Fetch", pair).Return(metricsFor(entities.ExchangeBybit, 42, 2, 1.0), nil)

	svc, err := NewAggregationService(provider, []entities.Pair{pair})
	require.NoError(t, err)

	m, err := svc.FetchPair(t.Context(), pair)
	require.NoError(t, err)
	assert.Equal(t, 42.0, m.Volume)

	_, err = svc.FetchPair(t.Context(), entities.NewPair(entities.ExchangeKuCoin, entities.AssetUSDT))
	assert.ErrorIs(t, err, entities.ErrUnsupportedPair)
}

// End-to-end through the real provider against stubbed exchanges
func TestAggregate_EndToEnd(t *testing.T) {
	binance := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":"000000","success":true,"data":[
			{"adv":{"tradableQuantity":"10","price":"1.0"}},
			{"adv":{"tradableQuantity":"20","price":"1.0"}},
			{"adv":{"tradableQuantity":"30","price":"1.0"}}]}`))
	}))
	defer binance.Close()

	bybit := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ret_code":0,"ret_msg":"SUCCESS","result":{"items":[]}}`))
	}))
	defer bybit.Close()

	locked := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer locked.Close()

	cfg := config.GetDefaultConfig().Exchange
	cfg.RequestTimeout = time.Second
	endpoints := config.EndpointsConfig{
		Binance: binance.URL,
		Bybit:   bybit.URL,
		OKX:     locked.URL,
		KuCoin:  locked.URL,
	}

	provider := p2p.NewProvider(p2p.NewClient(cfg), p2p.Descriptors(endpoints))
	pairs, err := PairsFor(config.TopologySingle)
	require.NoError(t, err)

	svc, err := NewAggregationService(provider, pairs)
	require.NoError(t, err)

	resp, err := svc.Aggregate(t.Context())
	require.NoError(t, err)

	require.Contains(t, resp, "binance")
	got := resp["binance"]
	assert.Equal(t, 60.0, got.Volume)
	assert.Equal(t, 3, got.Orders)
	assert.InDelta(t, 1.0, got.AvgPrice, 1e-12)
	assert.Equal(t, entities.ExchangeBinance, got.Exchange)

	assert.NotContains(t, resp, "bybit")
	assert.NotContains(t, resp, "okx")
	assert.NotContains(t, resp, "kucoin")
	assert.Len(t, resp, 1)
}
