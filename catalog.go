package scraper

import "context"

// CatalogService navigates the paginated catalog listing.
type CatalogService interface {
	// PageCount resolves the total number of result pages for the query
	// by probing the first listing page. The result is always >= 1.
	PageCount(ctx context.Context, q SearchQuery) (int, error)

	// ItemURLs returns the absolute detail-page URLs listed on the
	// given page, in document order. An empty result signals the end
	// of the catalog's content.
	ItemURLs(ctx context.Context, q SearchQuery, page int) ([]string, error)

	// ImageURLs returns the card image URLs listed on the given page.
	ImageURLs(ctx context.Context, q SearchQuery, page int) ([]string, error)
}

// Extractor turns a fetched item document into a Record.
type Extractor interface {
	// Extract parses the document and runs every field's strategy
	// chain. Missing fields degrade to empty strings; only a document
	// that cannot be parsed at all yields an error.
	Extract(html string, url string) (*Record, error)
}

// Limiter paces requests to the remote server.
type Limiter interface {
	// Wait blocks until the politeness interval allows another request.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context) error
}
