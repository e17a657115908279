// Package plex provides a client for Plex-compatible media servers.
package plex

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mvartia/plexwatch/internal/ratelimit"
)

const (
	defaultMaxAttempts   = 3
	defaultRatePerSecond = 8
	// TokenParam is the query parameter carrying the auth token.
	TokenParam = "X-Plex-Token"
	// TokenHeader is the header carrying the auth token on playback requests.
	TokenHeader = "X-Plex-Token"
)

var (
	// ErrNotFound is returned when the server has no item for a rating key.
	ErrNotFound = errors.New("item not found")
	// ErrEmptyContainer is returned when a response holds no metadata entries.
	ErrEmptyContainer = errors.New("empty media container")
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a Plex media server API client.
type Client struct {
	baseURL       string
	token         string
	httpClient    HTTPDoer
	rateLimiter   *ratelimit.Limiter
	retryAttempts int
}

// NewClient creates a new Plex API client for the given server and token.
func NewClient(baseURL, token string, opts ...Option) *Client {
	client := &Client{
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		token:         token,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		rateLimiter:   ratelimit.New("Plex", defaultRatePerSecond),
		retryAttempts: defaultMaxAttempts,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// BaseURL returns the server base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Token returns the auth token the client was created with.
func (c *Client) Token() string {
	return c.token
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(h HTTPDoer) Option {
	return func(client *Client) {
		if h != nil {
			client.httpClient = h
		}
	}
}

// WithRetryAttempts sets the number of retry attempts for failed requests.
func WithRetryAttempts(attempts int) Option {
	return func(client *Client) {
		if attempts > 0 {
			client.retryAttempts = attempts
		}
	}
}

// WithRateLimiter sets a custom rate limiter for the client.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		if limiter != nil {
			client.rateLimiter = limiter
		}
	}
}
