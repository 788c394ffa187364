// Package hub provides the HTTP adapter for the frame retrieval hub.
package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/framescope/internal/core/ports/driven"
	"github.com/custodia-labs/framescope/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.Hub = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:8000"
	DefaultTimeout = 30 * time.Second

	// maxErrorBody bounds how much of a failed response is kept in an APIError.
	maxErrorBody = 4096
)

// Config holds configuration for the hub client.
type Config struct {
	// BaseURL is the hub origin (default: http://localhost:8000).
	BaseURL string

	// APIPrefix is prepended to every endpoint path when set.
	APIPrefix string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration

	// RatePerSecond throttles outgoing requests. Zero disables throttling.
	RatePerSecond float64

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client talks to the hub over HTTP. It is safe for concurrent use.
type Client struct {
	client  *http.Client
	baseURL string
	prefix  string
	limiter *rate.Limiter
}

// envelope is the hub's response wrapper.
type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// NewClient creates a new hub client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1)
	}

	return &Client{
		client:  httpClient,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		prefix:  strings.Trim(cfg.APIPrefix, "/"),
		limiter: limiter,
	}
}

// URL returns the absolute URL of an endpoint such as "hub/translate".
func (c *Client) URL(endpoint string) string {
	endpoint = strings.TrimLeft(endpoint, "/")
	if c.prefix != "" {
		return c.baseURL + "/" + c.prefix + "/" + endpoint
	}
	return c.baseURL + "/" + endpoint
}

// postForm sends fields as a multipart form and returns the envelope data.
func (c *Client) postForm(ctx context.Context, endpoint string, fields map[string]string) (json.RawMessage, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	// Fields are written in key order.
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, fields[k]); err != nil {
			return nil, fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(endpoint), &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req)
}

// get sends a GET request and returns the envelope data.
func (c *Client) get(ctx context.Context, endpoint string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(endpoint), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	logger.Debug("hub: %s %s -> %d (%s, %d bytes)", req.Method, req.URL.Path, resp.StatusCode,
		time.Since(start).Round(time.Millisecond), len(body))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    truncate(strings.TrimSpace(string(body)), maxErrorBody),
			URL:        req.URL.String(),
		}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if env.Status != 0 && env.Status != http.StatusOK {
		return nil, &APIError{StatusCode: env.Status, Message: env.Message, URL: req.URL.String()}
	}
	return env.Data, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
