package crawl

import (
	"context"
)

// CollectImages walks the listing collecting card image URLs without
// fetching any detail page. The walk honors the same page bound, force
// mode, stop-on-empty rule and politeness pacing as the full crawl.
func (c *Crawler) CollectImages(ctx context.Context, opts Options) ([]string, error) {
	startPage := opts.StartPage
	if startPage < 1 {
		startPage = 1
	}

	endPage, err := c.resolveEndPage(ctx, opts)
	if err != nil {
		return nil, err
	}

	c.emit(ProgressEvent{Type: ProgressResolved, Page: startPage, TotalPages: endPage})

	var all []string
	for page := startPage; page <= endPage; page++ {
		if c.PageLimiter != nil && page > startPage {
			if err := c.PageLimiter.Wait(ctx); err != nil {
				return all, err
			}
		}

		urls, err := c.Catalog.ImageURLs(ctx, opts.Query, page)
		if err != nil {
			c.emit(ProgressEvent{Type: ProgressPageCompleted, Page: page, TotalPages: endPage, Error: err})
			continue
		}

		if len(urls) == 0 {
			c.emit(ProgressEvent{Type: ProgressPageEmpty, Page: page, TotalPages: endPage})
			break
		}

		all = append(all, urls...)
		c.emit(ProgressEvent{Type: ProgressPageCompleted, Page: page, TotalPages: endPage, Items: len(urls)})
	}

	c.emit(ProgressEvent{Type: ProgressFinished, TotalPages: endPage})
	return all, nil
}
