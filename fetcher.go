package rulescrape

import "context"

// Fetcher retrieves raw content from URLs.
type Fetcher interface {
	// Fetch performs a GET request and returns the response body.
	// Non-success statuses are returned as errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) ([]byte, error)
}
