// Package goquery implements catalog navigation and field extraction using
// CSS selectors over parsed HTML documents.
package goquery

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	scraper "github.com/antaww/tcgcollector-scraper"
)

// Default catalog endpoints.
const (
	// DefaultBaseURL is the listing endpoint. The Japanese section lives
	// under the "/jp" suffix.
	DefaultBaseURL = "https://www.tcgcollector.com/cards"

	// DefaultSiteURL is the origin used to resolve relative detail links.
	DefaultSiteURL = "https://www.tcgcollector.com"
)

// Listing selectors.
const (
	itemLinkSelector  = "a.card-image-grid-item-link"
	itemImageSelector = "img.card-image-grid-item-image"
)

// Ensure Catalog implements scraper.CatalogService at compile time.
var _ scraper.CatalogService = (*Catalog)(nil)

// Catalog navigates the paginated card listing. It fetches listing pages
// through the injected Fetcher and parses them into page counts, detail-page
// URLs and image URLs.
type Catalog struct {
	fetcher scraper.Fetcher
	baseURL string
	siteURL string
}

// CatalogOption configures a Catalog.
type CatalogOption func(*Catalog)

// WithBaseURL overrides the listing endpoint. Used by tests to point the
// catalog at a local server.
func WithBaseURL(baseURL string) CatalogOption {
	return func(c *Catalog) {
		c.baseURL = baseURL
	}
}

// WithSiteURL overrides the origin used to resolve relative detail links.
func WithSiteURL(siteURL string) CatalogOption {
	return func(c *Catalog) {
		c.siteURL = siteURL
	}
}

// NewCatalog creates a Catalog backed by the given fetcher.
func NewCatalog(fetcher scraper.Fetcher, opts ...CatalogOption) *Catalog {
	c := &Catalog{
		fetcher: fetcher,
		baseURL: DefaultBaseURL,
		siteURL: DefaultSiteURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListingURL returns the full listing URL for the query and page number.
// The page parameter is omitted for page 1, per site convention.
func (c *Catalog) ListingURL(q scraper.SearchQuery, page int) string {
	base := c.baseURL
	if q.Japanese {
		base += "/jp"
	}
	return base + "?" + q.Values(page).Encode()
}

// PageCount resolves the total number of result pages for the query by
// probing the first listing page (page parameter omitted) and running the
// pagination heuristics over it. The returned count is always >= 1, even
// alongside an error, so callers can degrade to a single-page walk.
func (c *Catalog) PageCount(ctx context.Context, q scraper.SearchQuery) (int, error) {
	html, err := c.fetcher.Fetch(ctx, c.ListingURL(q, 1))
	if err != nil {
		return 1, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 1, scraper.Errorf(scraper.EINVALID, "failed to parse listing page: %v", err)
	}

	return ResolvePageCount(doc, q.EffectivePerPage()), nil
}

// ItemURLs returns the absolute detail-page URLs listed on the given page,
// in document order. An empty result signals the end of the catalog.
func (c *Catalog) ItemURLs(ctx context.Context, q scraper.SearchQuery, page int) ([]string, error) {
	doc, err := c.listingDocument(ctx, q, page)
	if err != nil {
		return nil, err
	}

	site, err := url.Parse(c.siteURL)
	if err != nil {
		return nil, scraper.Errorf(scraper.EINVALID, "invalid site URL: %v", err)
	}

	var urls []string
	doc.Find(itemLinkSelector).Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}
		if resolved := resolveURL(site, href); resolved != "" {
			urls = append(urls, resolved)
		}
	})
	return urls, nil
}

// ImageURLs returns the card image URLs listed on the given page.
func (c *Catalog) ImageURLs(ctx context.Context, q scraper.SearchQuery, page int) ([]string, error) {
	doc, err := c.listingDocument(ctx, q, page)
	if err != nil {
		return nil, err
	}

	var urls []string
	doc.Find(itemImageSelector).Each(func(_ int, sel *goquery.Selection) {
		if src, exists := sel.Attr("src"); exists && src != "" {
			urls = append(urls, src)
		}
	})
	return urls, nil
}

// listingDocument fetches and parses one listing page.
func (c *Catalog) listingDocument(ctx context.Context, q scraper.SearchQuery, page int) (*goquery.Document, error) {
	html, err := c.fetcher.Fetch(ctx, c.ListingURL(q, page))
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, scraper.Errorf(scraper.EINVALID, "failed to parse listing page: %v", err)
	}
	return doc, nil
}

// resolveURL resolves a possibly-relative href against the site origin.
// Returns empty string if the href cannot be parsed.
func resolveURL(site *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return site.ResolveReference(ref).String()
}
