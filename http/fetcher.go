// Package http provides an HTTP-based implementation of rulescrape.Fetcher
// for the listing page and the chapter documents it links to.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/rulescrape"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = rulescrape.DefaultTimeout

// UserAgent identifies the scraper to the remote site.
const UserAgent = "rulescrape/1.0 (+https://github.com/fwojciec/rulescrape)"

// Ensure Fetcher implements rulescrape.Fetcher at compile time.
var _ rulescrape.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves content from URLs using plain GET requests.
// Each request is bounded by the configured timeout; failures are returned
// as-is and never retried.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	limiter *HostLimiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRateLimit throttles requests to rps per second per host with no
// bursting. A non-positive rps leaves requests unthrottled.
func WithRateLimit(rps float64) Option {
	return WithLimiter(NewHostLimiter(rps))
}

// WithLimiter throttles requests through a limiter that may be shared
// with other fetchers.
func WithLimiter(l *HostLimiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the body at the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, req.URL.Host); err != nil {
			return nil, err
		}
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}
