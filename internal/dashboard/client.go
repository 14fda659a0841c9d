package dashboard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"p2p-volume-tracker/internal/application/dto"
	"p2p-volume-tracker/internal/domain/entities"
)

const (
	allExchangesPath = "/api/all-exchanges"
	maxBodyBytes     = 1 << 20
)

// Fetcher loads one merged snapshot from the tracker API
type Fetcher interface {
	FetchAll(ctx context.Context) (entities.AggregateResponse, error)
}

// Client calls the tracker's merged endpoint
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchAll performs GET {base}/api/all-exchanges and decodes the merged map
func (c *Client) FetchAll(ctx context.Context) (entities.AggregateResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+allExchangesPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr dto.ErrorResponse
		if sonic.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	var data entities.AggregateResponse
	if err := sonic.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if data == nil {
		data = entities.AggregateResponse{}
	}
	return data, nil
}
