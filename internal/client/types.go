package client

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds each remote call when the configuration does
// not specify one.
const DefaultTimeout = 10 * time.Second

// Config describes how to reach the remote directory.
type Config struct {
	BaseURL    string        // collaborator root, e.g. https://jsonplaceholder.typicode.com
	Collection string        // collection segment, defaults to "users"
	Timeout    time.Duration // per-request budget, defaults to DefaultTimeout
	UserAgent  string        // optional User-Agent header
}

// Client is a typed HTTP client for the remote directory.  It issues
// plain JSON request/response calls; there is no retry, caching, or
// connection management beyond what net/http provides.
type Client struct {
	httpClient *http.Client
	base       *url.URL
	collection string
	userAgent  string
}

// New validates cfg and returns a ready-to-use client.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("client: base URL is required")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("client: invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("client: base URL %q must include scheme and host", cfg.BaseURL)
	}

	collection := strings.Trim(cfg.Collection, "/")
	if collection == "" {
		collection = "users"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		base:       base,
		collection: collection,
		userAgent:  cfg.UserAgent,
	}, nil
}

// collectionURL returns the absolute URL of the record collection.
func (c *Client) collectionURL() string {
	return c.base.JoinPath(c.collection).String()
}

// itemURL returns the absolute URL of a single record.
func (c *Client) itemURL(id int) string {
	return c.base.JoinPath(c.collection, fmt.Sprintf("%d", id)).String()
}
