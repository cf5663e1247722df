// Package apiclient is a typed client for the document analysis REST API.
//
// Every operation performs one HTTP round trip against the configured base URL
// and returns either the decoded payload or an *Error. Nothing is cached between
// calls.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"parseai/internal/config"
)

// Client calls the analysis API.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
	headers   http.Header
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Add(key, value)
	}
}

// New creates a Client for cfg.BaseURL. An empty base URL falls back to
// config.DefaultBaseURL.
func New(cfg config.ClientConfig, opts ...Option) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = config.DefaultBaseURL
	}
	c := &Client{
		baseURL:   strings.TrimRight(base, "/"),
		http:      &http.Client{Timeout: cfg.Timeout()},
		userAgent: cfg.UserAgent,
		headers:   make(http.Header),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewWithBaseURL creates a Client with default settings pointing at baseURL.
func NewWithBaseURL(baseURL string, opts ...Option) *Client {
	return New(config.ClientConfig{BaseURL: baseURL}, opts...)
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL returns the absolute URL for path.
func (c *Client) URL(path string) string {
	return JoinURL(c.baseURL, path)
}

// request describes one outgoing call.
type request struct {
	method      string
	path        string
	body        io.Reader
	contentType string
}

// send issues req and returns the raw response. Non-2xx statuses are converted
// to *Error and the body is consumed; on success the caller owns resp.Body.
func (c *Client) send(ctx context.Context, r request) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, r.method, c.URL(r.path), r.body)
	if err != nil {
		return nil, newTransportError(r.method, r.path, err)
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, newTransportError(r.method, r.path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer func() { _ = resp.Body.Close() }()
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			body = nil
		}
		return nil, newHTTPError(r.method, r.path, resp.StatusCode, body)
	}
	return resp, nil
}

// do issues req and decodes a 2xx JSON body into out. It reports whether a
// body was decoded; 204 and empty bodies leave out untouched.
func (c *Client) do(ctx context.Context, r request, out any) (bool, error) {
	resp, err := c.send(ctx, r)
	if err != nil {
		return false, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, newTransportError(r.method, r.path, err)
	}
	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(body)) == 0 || out == nil {
		return false, nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return false, newDecodeError(r.method, r.path, resp.StatusCode, err)
	}
	return true, nil
}

// getJSON performs a GET and decodes the body as T. A 204 yields (nil, nil).
func getJSON[T any](ctx context.Context, c *Client, path string) (*T, error) {
	var out T
	decoded, err := c.do(ctx, request{method: http.MethodGet, path: path}, &out)
	if err != nil {
		return nil, err
	}
	if !decoded {
		return nil, nil
	}
	return &out, nil
}

// postJSON performs a POST with a JSON-encoded payload and decodes the body as T.
func postJSON[T any](ctx context.Context, c *Client, path string, payload any) (*T, error) {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, newEncodeError(http.MethodPost, path, err)
	}
	var out T
	decoded, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        path,
		body:        bytes.NewReader(bodyBytes),
		contentType: "application/json",
	}, &out)
	if err != nil {
		return nil, err
	}
	if !decoded {
		return nil, nil
	}
	return &out, nil
}
