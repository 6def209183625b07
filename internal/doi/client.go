// Package doi checks DOI identifiers against the doi.org resolver.
package doi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the DOI resolver endpoint.
	BaseURL = "https://doi.org"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RateLimit keeps resolution polite: 5 requests per second.
	RateLimit = 5.0
)

// Client is a rate-limited HTTP client for the doi.org resolver.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// NewClient creates a DOI resolver client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			// doi.org answers a resolvable DOI with a redirect to the
			// publisher; the redirect itself is the answer.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		limiter: rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL: BaseURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Resolve reports whether the DOI resolves. It returns false with no
// error for a clean "not registered" answer, and an error for transport
// failures or unexpected statuses.
func (c *Client) Resolve(ctx context.Context, doi string) (bool, error) {
	doi = Normalize(doi)
	if doi == "" {
		return false, fmt.Errorf("empty doi")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/"+doi, nil)
	if err != nil {
		return false, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("resolving %s: %w", doi, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		return true, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("resolving %s: unexpected status %d", doi, resp.StatusCode)
	}
}

// Normalize strips resolver URL prefixes and the doi: scheme, and
// lowercases, so stored variants of the same DOI compare and resolve the
// same way.
func Normalize(doi string) string {
	doi = strings.TrimSpace(doi)
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "doi.org/")
	doi = strings.TrimPrefix(doi, "DOI:")
	doi = strings.TrimPrefix(doi, "doi:")
	return strings.ToLower(doi)
}
