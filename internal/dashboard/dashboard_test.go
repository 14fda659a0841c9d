package dashboard

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"p2p-volume-tracker/internal/domain/entities"
)

var fixedNow = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

var dualKeys = []string{"binance-usdc", "bybit-usdc", "okx-usdc", "kucoin-usdc", "binance-usdt", "bybit-usdt"}

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchAll(ctx context.Context) (entities.AggregateResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(entities.AggregateResponse)
	return resp, args.Error(1)
}

func sampleData() entities.AggregateResponse {
	return entities.AggregateResponse{
		"bybit-usdt":   {Volume: 40, Orders: 2, AvgPrice: 1.00126, Exchange: entities.ExchangeBybit, Asset: entities.AssetUSDT},
		"binance-usdc": {Volume: 60, Orders: 3, AvgPrice: 1, Exchange: entities.ExchangeBinance, Asset: entities.AssetUSDC},
		"okx-usdc": {
			Volume: 250000, Orders: 30, AvgPrice: 0.999, Exchange: entities.ExchangeOKX, Asset: entities.AssetUSDC,
			Note: "Simulated data - API requires authentication",
		},
	}
}

func TestClient_FetchAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/all-exchanges", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"binance":{"volume":60,"orders":3,"avgPrice":1,"timestamp":"2026-01-01T12:00:00Z","exchange":"binance"}}`))
	}))
	defer server.Close()

	data, err := NewClient(server.URL+"/", time.Second).FetchAll(t.Context())
	require.NoError(t, err)
	require.Contains(t, data, "binance")
	assert.Equal(t, 60.0, data["binance"].Volume)
	assert.Equal(t, 3, data["binance"].Orders)
	assert.Equal(t, entities.ExchangeBinance, data["binance"].Exchange)
	assert.True(t, data["binance"].Timestamp.Equal(fixedNow))
}

func TestClient_FetchAll_EmptyObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	data, err := NewClient(server.URL, time.Second).FetchAll(t.Context())
	require.NoError(t, err)
	assert.NotNil(t, data)
	assert.Empty(t, data)
}

func TestClient_FetchAll_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"server error with body", http.StatusInternalServerError, `{"error":"Failed to fetch exchange data"}`, "HTTP 500: Failed to fetch exchange data"},
		{"server error without body", http.StatusBadGateway, ``, "HTTP 502"},
		{"malformed json", http.StatusOK, `[1,2`, "failed to decode response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewClient(server.URL, time.Second).FetchAll(t.Context())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestClient_FetchAll_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(url, time.Second).FetchAll(t.Context())
	assert.Error(t, err)
}

func TestDashboard_RefreshReplacesStateWholesale(t *testing.T) {
	fetcher := &MockFetcher{}
	first := sampleData()
	second := entities.AggregateResponse{
		"kucoin-usdc": {Volume: 5, Orders: 1, AvgPrice: 1, Exchange: entities.ExchangeKuCoin, Asset: entities.AssetUSDC},
	}
	fetcher.On("FetchAll", mock.Anything).Return(first, nil).Once()
	fetcher.On("FetchAll", mock.Anything).Return(second, nil).Once()

	d := New(fetcher, dualKeys, &bytes.Buffer{}, time.Minute, WithClock(func() time.Time { return fixedNow }))

	state := d.Refresh(t.Context())
	assert.Len(t, state.Data, 3)

	state = d.Refresh(t.Context())
	assert.Len(t, state.Data, 1)
	assert.Contains(t, state.Data, "kucoin-usdc")
	assert.NoError(t, state.Err)
	fetcher.AssertExpectations(t)
}

func TestDashboard_FailureKeepsStaleState(t *testing.T) {
	fetcher := &MockFetcher{}
	fetcher.On("FetchAll", mock.Anything).Return(sampleData(), nil).Once()
	fetcher.On("FetchAll", mock.Anything).Return(nil, errors.New("HTTP 500")).Once()
	fetcher.On("FetchAll", mock.Anything).Return(sampleData(), nil).Once()

	d := New(fetcher, dualKeys, &bytes.Buffer{}, time.Minute, WithClock(func() time.Time { return fixedNow }))

	d.Refresh(t.Context())
	state := d.Refresh(t.Context())
	require.Error(t, state.Err)
	assert.Len(t, state.Data, 3)
	assert.Equal(t, fixedNow, state.UpdatedAt)

	state = d.Refresh(t.Context())
	assert.NoError(t, state.Err)
	assert.Equal(t, state, d.State())
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleData())

	assert.InDelta(t, 250100.0, s.TotalVolume, 1e-9)
	assert.Equal(t, 35, s.TotalOrders)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestSummarize_SkipsNullEntries(t *testing.T) {
	data := sampleData()
	data["gone"] = nil

	s := Summarize(data)

	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 35, s.TotalOrders)
	assert.Len(t, Cards(data, dualKeys), s.Count)
}

func TestCards_TopologyOrder(t *testing.T) {
	data := sampleData()
	data["zeta"] = &entities.ExchangeMetrics{Exchange: "zeta"}
	data["alpha"] = &entities.ExchangeMetrics{Exchange: "alpha"}

	cards := Cards(data, dualKeys)

	var keys []string
	for _, c := range cards {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{"binance-usdc", "okx-usdc", "bybit-usdt", "alpha", "zeta"}, keys)
	assert.Equal(t, "Binance USDC", cards[0].Title)
	assert.Equal(t, "alpha", cards[3].Title)
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	state := State{Data: sampleData(), UpdatedAt: fixedNow.Add(-10 * time.Second)}

	require.NoError(t, Render(&buf, state, dualKeys, fixedNow, time.Minute))
	out := buf.String()

	assert.Contains(t, out, "10s ago")
	assert.NotContains(t, out, "stale")
	assert.NotContains(t, out, ErrorBanner)
	assert.Contains(t, out, "250100.00")
	assert.Contains(t, out, "35")
	assert.Contains(t, out, "1.0013")
	assert.Contains(t, out, "0.9990")
	assert.Contains(t, out, "Simulated data - API requires authentication")

	binance := strings.Index(out, "Binance USDC")
	okx := strings.Index(out, "OKX USDC")
	bybit := strings.Index(out, "Bybit USDT")
	assert.True(t, binance >= 0 && binance < okx && okx < bybit)
}

func TestRender_ErrorBannerShownOnce(t *testing.T) {
	var buf bytes.Buffer
	state := State{
		Data:      sampleData(),
		UpdatedAt: fixedNow.Add(-5 * time.Minute),
		Err:       errors.New("HTTP 500"),
	}

	require.NoError(t, Render(&buf, state, dualKeys, fixedNow, time.Minute))
	out := buf.String()

	assert.Equal(t, 1, strings.Count(out, ErrorBanner))
	assert.Contains(t, out, "stale")
	assert.Contains(t, out, "Binance USDC")
}

func TestRender_NoData(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Render(&buf, State{}, dualKeys, fixedNow, 0))
	out := buf.String()

	assert.Contains(t, out, "never")
	assert.Contains(t, out, "No exchange data available")
}

func TestDashboard_RunPollsUntilCanceled(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"bybit":{"volume":1,"orders":1,"avgPrice":1,"timestamp":"2026-01-01T12:00:00Z","exchange":"bybit"}}`))
	}))
	defer server.Close()

	var buf bytes.Buffer
	d := New(NewClient(server.URL, time.Second), []string{"binance", "bybit"}, &buf, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(t.Context(), 60*time.Millisecond)
	defer cancel()

	require.NoError(t, d.Run(ctx))
	assert.GreaterOrEqual(t, calls.Load(), int32(2))
	assert.Contains(t, buf.String(), "Bybit")
}
