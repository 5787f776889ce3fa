package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dm/meshify/internal/model"
)

// Fetcher retrieves one endpoint's JSON document from the backend.
type Fetcher interface {
	Fetch(ctx context.Context, ep model.Endpoint) (model.Fetched, error)
}

// ClientConfig holds configuration for DefaultClient.
type ClientConfig struct {
	BaseURL            string
	Username           string
	Password           string
	Token              string
	InsecureSkipVerify bool
	RequestTimeout     time.Duration
}

// DefaultClient implements Fetcher using the standard net/http package.
type DefaultClient struct {
	http   *http.Client
	config ClientConfig
}

// NewDefaultClient constructs a DefaultClient from the given config.
// It configures TLS skip-verify and request timeout from the config.
// Returns an error if BaseURL is empty or not an http(s) URL.
func NewDefaultClient(cfg ClientConfig) (*DefaultClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("BaseURL is required")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid BaseURL %q: %w", cfg.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q (must be http or https)", u.Scheme)
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec
	}

	return &DefaultClient{
		http: &http.Client{
			Timeout:   cfg.RequestTimeout,
			Transport: transport,
		},
		config: cfg,
	}, nil
}

// BaseURL returns the configured backend base URL.
func (c *DefaultClient) BaseURL() string {
	return c.config.BaseURL
}

// Resolve turns an endpoint URL into an absolute URL. Absolute URLs are
// returned unchanged; paths are joined onto BaseURL.
func (c *DefaultClient) Resolve(raw string) string {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	return strings.TrimRight(c.config.BaseURL, "/") + raw
}

// Fetch performs the endpoint's request and returns its JSON body.
// Non-2xx statuses and bodies that are not valid JSON are errors.
func (c *DefaultClient) Fetch(ctx context.Context, ep model.Endpoint) (model.Fetched, error) {
	body, status, err := c.do(ctx, ep.HTTPMethod(), c.Resolve(ep.URL), ep.Body)
	if err != nil {
		return model.Fetched{}, fmt.Errorf("Fetch %s: %w", ep.Label, err)
	}
	if !json.Valid(body) {
		return model.Fetched{}, fmt.Errorf("Fetch %s: invalid JSON response: %s", ep.Label, truncate(body, 200))
	}
	return model.Fetched{Payload: json.RawMessage(body), StatusCode: status}, nil
}

// do performs a request against the absolute URL.
// It sets Accept: application/json and Basic or Bearer auth if configured.
// Returns the response body bytes or an error on non-2xx status.
func (c *DefaultClient) do(ctx context.Context, method, target string, payload []byte) ([]byte, int, error) {
	var reqBody io.Reader
	if len(payload) > 0 {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	switch {
	case c.config.Token != "":
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	case c.config.Username != "" || c.config.Password != "":
		req.SetBasicAuth(c.config.Username, c.config.Password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	const maxResponseBytes = 32 * 1024 * 1024
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxResponseBytes {
		return nil, resp.StatusCode, fmt.Errorf("response body exceeds %d MB limit", maxResponseBytes/(1024*1024))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(body, 200))
	}

	return body, resp.StatusCode, nil
}

// Ping checks connectivity by calling the cluster endpoint with a 1s timeout.
func (c *DefaultClient) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	_, _, err := c.do(pingCtx, http.MethodGet, c.Resolve(PathCluster), nil)
	return err
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
