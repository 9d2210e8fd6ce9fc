package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/piresc/cardsettle/internal/pkg/circuitbreaker"
	nrpkg "github.com/piresc/cardsettle/internal/pkg/newrelic"
	"github.com/piresc/cardsettle/internal/pkg/retry"
)

const (
	// DefaultTimeout for HTTP requests
	DefaultTimeout = 30 * time.Second
	// maxErrorBody bounds how much of an error response is kept in HTTPError
	maxErrorBody = 512
)

// Config configures a Client
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Header carries a static credential such as an API key, optional
	Header map[string]string
}

// Client is a JSON HTTP client guarded by a circuit breaker and a retrier.
// Either guard may be nil.
type Client struct {
	baseURL    string
	httpClient *nethttp.Client
	header     map[string]string
	breaker    *circuitbreaker.CircuitBreaker
	retrier    *retry.Retrier
}

// NewClient creates a new HTTP client
func NewClient(cfg Config, breaker *circuitbreaker.CircuitBreaker, retrier *retry.Retrier) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &nethttp.Client{Timeout: cfg.Timeout},
		header:     cfg.Header,
		breaker:    breaker,
		retrier:    retrier,
	}
}

// HTTPError is a non-2xx response
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
}

// IsRetryable reports whether err is worth another attempt: server errors,
// throttling and network failures
func IsRetryable(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500 || httpErr.StatusCode == nethttp.StatusTooManyRequests
	}
	return retry.IsNetworkError(err)
}

// GetJSON performs GET baseURL+path?query and decodes a 2xx JSON body into out
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	call := func(ctx context.Context) error {
		return c.do(ctx, nethttp.MethodGet, target, out)
	}
	withRetry := call
	if c.retrier != nil {
		withRetry = func(ctx context.Context) error { return c.retrier.Execute(ctx, call) }
	}
	if c.breaker != nil {
		return c.breaker.Execute(ctx, withRetry)
	}
	return withRetry(ctx)
}

func (c *Client) do(ctx context.Context, method, target string, out interface{}) error {
	req, err := nethttp.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range c.header {
		req.Header.Set(k, v)
	}

	resp, err := nrpkg.InstrumentHTTPRequest(ctx, req, func() (*nethttp.Response, error) {
		return c.httpClient.Do(req)
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
