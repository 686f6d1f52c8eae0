package remote

import (
	"context"
	"fmt"
	"net/http"
	"skinwatch/internal/models"
)

type ScanFetcherInterface interface {
	FetchRecentScan(ctx context.Context, token string) (*models.ScanResult, error)
}

func NewScanFetcher(c *Client) ScanFetcherInterface {
	return c
}

// FetchRecentScan never touches the network without a token. Every transport,
// status or decode failure is reported as models.ErrUnavailable; the next
// scheduled run is the retry.
func (c *Client) FetchRecentScan(ctx context.Context, token string) (*models.ScanResult, error) {
	if token == "" {
		return nil, models.ErrNotAuthenticated
	}

	var result models.ScanResult
	if err := c.do(ctx, http.MethodGet, "/api/recent-scan", token, nil, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrUnavailable, err)
	}
	return &result, nil
}
