package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"skinwatch/internal/providers"
	"skinwatch/internal/structures"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

const maxResponseBodySize = 1 << 20 // 1 MB

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// Client talks to the skin-scan backend. One Client is shared by the scan
// fetcher, the user directory, the relay and the login command.
type Client struct {
	baseUrl string
	http    *http.Client
	logger  providers.Logger
}

func NewClient(conf *structures.Config, logger providers.Logger) *Client {
	timeout := conf.Api.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseUrl: strings.TrimRight(conf.Api.BaseUrl, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type errorBody struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseUrl+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return err
	}
	c.logger.Debugf(providers.TypeMonitor, "%s %s -> %d in %s", method, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		return &StatusError{Code: resp.StatusCode, Message: eb.Message}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
