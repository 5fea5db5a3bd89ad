// Package http provides an HTTP-based implementation of ecidata.PageFetcher
// for the constituency-wise results pages.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/ecidata"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultBaseURL is the results site serving constituency pages.
const DefaultBaseURL = "http://eciresults.nic.in"

// Ensure Fetcher implements ecidata.PageFetcher at compile time.
var _ ecidata.PageFetcher = (*Fetcher)(nil)

// Fetcher retrieves constituency results pages using HTTP requests.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	baseURL string
	limiter ecidata.DomainLimiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
// Ignored when WithClient is used.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithBaseURL sets the site the pages are fetched from.
// Defaults to DefaultBaseURL.
func WithBaseURL(base string) Option {
	return func(f *Fetcher) {
		f.baseURL = strings.TrimSuffix(base, "/")
	}
}

// WithLimiter makes every request wait on l, keyed by host.
func WithLimiter(l ecidata.DomainLimiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// WithClient sets the HTTP client used for requests.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Timeout: f.timeout,
		}
	}

	return f
}

// ConstituencyURL returns the results page URL of ref on the site at base.
func ConstituencyURL(base string, ref ecidata.ConstituencyRef) string {
	return fmt.Sprintf("%s/ConstituencywiseS%d%d.htm?ac=%d",
		strings.TrimSuffix(base, "/"), ref.State, ref.Constituency, ref.Constituency)
}

// Fetch requests the results page of ref and returns its body.
// The caller must close the body.
func (f *Fetcher) Fetch(ctx context.Context, ref ecidata.ConstituencyRef) (io.ReadCloser, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	target := ConstituencyURL(f.baseURL, ref)

	if f.limiter != nil {
		u, err := url.Parse(target)
		if err != nil {
			return nil, fmt.Errorf("invalid page URL: %w", err)
		}
		if err := f.limiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, target)
	}

	return resp.Body, nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
