// Package helpdesk provides an HTTP client for the helpdesk staff API.
// It implements a deep module interface - simple methods hiding request
// building, authentication and response decoding.
package helpdesk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/h0rv/hdesk/internal/logging"
)

// ErrEmptyTarget is returned when a dialog is confirmed before any submit
// target was resolved.
var ErrEmptyTarget = errors.New("no submit target")

// APIError is returned for unexpected HTTP status codes.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s %s: HTTP %d", e.Method, e.URL, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Client is a helpdesk API client.
type Client struct {
	baseURL *url.URL
	token   string
	http    *http.Client
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a client for the helpdesk at baseURL, authenticating with token.
func New(baseURL, token string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: must be absolute", baseURL)
	}

	c := &Client{
		baseURL: u,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     logging.With().Str("component", "helpdesk").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the helpdesk root URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Resolve turns an endpoint path into an absolute URL under the base URL.
// Absolute URLs are returned unchanged.
func (c *Client) Resolve(endpoint string) string {
	if u, err := url.Parse(endpoint); err == nil && u.IsAbs() {
		return endpoint
	}
	return c.baseURL.String() + "/" + strings.TrimLeft(endpoint, "/")
}

// do executes a request with authentication and decodes a JSON response
// into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader, contentType string, out any) error {
	target := c.Resolve(endpoint)

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("helpdesk request")

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", target, err)
	}
	return nil
}
