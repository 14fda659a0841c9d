package p2p

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/bytedance/sonic"

	"p2p-volume-tracker/internal/domain/entities"
	"p2p-volume-tracker/internal/infrastructure/config"
	"p2p-volume-tracker/internal/infrastructure/logging"
	"p2p-volume-tracker/internal/infrastructure/metrics"
)

const (
	DefaultRequestTimeout = 5 * time.Second
	maxResponseBytes      = 4 << 20
)

// errRetryable marks failures worth another attempt when retries are enabled
var errRetryable = errors.New("retryable upstream failure")

// Client sends the fixed per-exchange request and returns the raw reply
type Client struct {
	httpClient    *http.Client
	timeout       time.Duration
	maxRetries    int
	retryDelay    time.Duration
	maxRetryDelay time.Duration
	userAgent     string
}

// NewClient builds a client from the exchange configuration
func NewClient(cfg config.ExchangeConfig) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &Client{
		httpClient:    &http.Client{},
		timeout:       timeout,
		maxRetries:    cfg.MaxRetries,
		retryDelay:    cfg.RetryDelay,
		maxRetryDelay: cfg.MaxRetryDelay,
		userAgent:     cfg.UserAgent,
	}
}

// WithHTTPClient swaps the transport, mainly for tests
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	c.httpClient = httpClient
	return c
}

// FetchRaw performs one upstream call (plus optional retries). Every failure
// wraps one of the provider error kinds.
func (c *Client) FetchRaw(ctx context.Context, d Descriptor, asset entities.Asset) ([]byte, error) {
	body, err := sonic.ConfigFastest.Marshal(d.Body(asset))
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s request: %w", d.Exchange, err)
	}

	var raw []byte
	retryErr := retry.Do(
		func() error {
			reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
			defer cancel()

			payload, reqErr := c.doRequest(reqCtx, d, asset, body)
			if reqErr != nil {
				return reqErr
			}
			raw = payload
			return nil
		},
		retry.Attempts(uint(c.maxRetries+1)),
		retry.Delay(c.retryDelay),
		retry.MaxDelay(c.maxRetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, errRetryable)
		}),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			metrics.RecordUpstreamRetry(string(d.Exchange), string(asset), int(n+1))
			logging.Warn(ctx, "P2P API retry attempt", logging.Fields{
				logging.FieldExchange: d.Exchange,
				logging.FieldAsset:    asset,
				"attempt":             n + 1,
				"max_attempts":        c.maxRetries + 1,
				logging.FieldError:    err.Error(),
			})
		}),
	)
	if retryErr != nil {
		if !classified(retryErr) {
			retryErr = fmt.Errorf("%w: %v", entities.ErrProviderUnreachable, retryErr)
		}
		return nil, retryErr
	}

	return raw, nil
}

func (c *Client) doRequest(ctx context.Context, d Descriptor, asset entities.Asset, body []byte) ([]byte, error) {
	logging.LogUpstreamRequest(ctx, string(d.Exchange), string(asset), d.Endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", entities.ErrProviderUnreachable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		metrics.RecordUpstreamRequest(string(d.Exchange), string(asset), 0, duration.Seconds())
		logging.WarnWithError(ctx, "P2P API request failed", err, logging.Fields{
			logging.FieldExchange: d.Exchange,
			logging.FieldAsset:    asset,
			logging.FieldURL:      d.Endpoint,
		})
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: request timed out after %s: %w", entities.ErrProviderUnreachable, c.timeout, errRetryable)
		}
		if errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("%w: request canceled", entities.ErrProviderUnreachable)
		}
		return nil, fmt.Errorf("%w: %v: %w", entities.ErrProviderUnreachable, err, errRetryable)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	metrics.RecordUpstreamRequest(string(d.Exchange), string(asset), resp.StatusCode, duration.Seconds())
	logging.LogUpstreamResponse(ctx, string(d.Exchange), string(asset), resp.StatusCode, duration)

	if statusErr := classifyStatus(resp.StatusCode); statusErr != nil {
		return nil, statusErr
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v: %w", entities.ErrProviderUnreachable, err, errRetryable)
	}
	return payload, nil
}

// classifyStatus maps non-2xx replies onto the provider error kinds
func classifyStatus(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: HTTP %d", entities.ErrProviderAuthRequired, status)
	case status == http.StatusTooManyRequests || status >= 500:
		return fmt.Errorf("%w: HTTP %d: %w", entities.ErrProviderUnreachable, status, errRetryable)
	default:
		return fmt.Errorf("%w: HTTP %d", entities.ErrUpstreamSchemaMismatch, status)
	}
}

func classified(err error) bool {
	return errors.Is(err, entities.ErrProviderUnreachable) ||
		errors.Is(err, entities.ErrProviderAuthRequired) ||
		errors.Is(err, entities.ErrProviderEmptyResult) ||
		errors.Is(err, entities.ErrUpstreamSchemaMismatch)
}
