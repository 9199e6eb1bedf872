package scraper

import "context"

// Fetcher retrieves raw HTML from URLs.
// Implementations send a fixed browser-identity header set with every
// request; no cookie or session state is carried between requests.
type Fetcher interface {
	// Fetch performs a GET request and returns the response body.
	// A non-2xx status is reported as an EUNAVAILABLE error.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any transport resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
