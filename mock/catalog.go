package mock

import (
	"context"

	scraper "github.com/antaww/tcgcollector-scraper"
)

var _ scraper.CatalogService = (*CatalogService)(nil)

// CatalogService is a mock implementation of scraper.CatalogService.
type CatalogService struct {
	PageCountFn func(ctx context.Context, q scraper.SearchQuery) (int, error)
	ItemURLsFn  func(ctx context.Context, q scraper.SearchQuery, page int) ([]string, error)
	ImageURLsFn func(ctx context.Context, q scraper.SearchQuery, page int) ([]string, error)
}

func (c *CatalogService) PageCount(ctx context.Context, q scraper.SearchQuery) (int, error) {
	return c.PageCountFn(ctx, q)
}

func (c *CatalogService) ItemURLs(ctx context.Context, q scraper.SearchQuery, page int) ([]string, error) {
	return c.ItemURLsFn(ctx, q, page)
}

func (c *CatalogService) ImageURLs(ctx context.Context, q scraper.SearchQuery, page int) ([]string, error) {
	return c.ImageURLsFn(ctx, q, page)
}
