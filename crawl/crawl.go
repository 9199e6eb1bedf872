// Package crawl provides the paginated crawl orchestration. It coordinates
// page-bound resolution, the listing walk, the bounded fetch pool, state
// accumulation and incremental persistence.
package crawl

import (
	"context"
	"fmt"

	scraper "github.com/antaww/tcgcollector-scraper"
)

// MaxForcedPages is the hard safety cap on the page ceiling in force mode.
// Normal runs are bounded by the resolved maximum instead; stop-on-empty
// overrides both.
const MaxForcedPages = 100

// Crawler walks the catalog listing page by page and extracts every item.
//
// Pages are strictly sequential: page N+1 never starts before page N's pool
// has drained and the state has been flushed. Only the driver mutates the
// CrawlState, between pool calls, so no locking is needed anywhere.
type Crawler struct {
	Catalog   scraper.CatalogService
	Fetcher   scraper.Fetcher
	Extractor scraper.Extractor

	// Writers receive the full state after every completed page.
	// A write failure aborts the run; it is the one hard fault.
	Writers []scraper.StateWriter

	// PageLimiter paces listing-page requests. Optional.
	PageLimiter scraper.Limiter

	// ItemLimiter paces sequential item requests. Ignored when
	// Concurrency > 1. Optional.
	ItemLimiter scraper.Limiter

	// Concurrency is the fetch-pool worker count. Values below 1 mean
	// sequential processing.
	Concurrency int

	// Progress, if set, receives events as the crawl proceeds.
	Progress ProgressFunc
}

// Options configures one crawl run.
type Options struct {
	// Query is the catalog search executed by the crawl.
	Query scraper.SearchQuery

	// StartPage is the first page to walk. Values below 1 mean 1.
	StartPage int

	// EndPage is the user-supplied last page. Zero means "use the
	// resolved maximum". Without Force the value is clamped to the
	// resolved maximum; with Force it is honored up to MaxForcedPages.
	EndPage int

	// Force widens the page ceiling beyond the resolved maximum.
	Force bool

	// State carries over a previous run's records and counters when
	// resuming. Nil starts fresh.
	State *scraper.CrawlState
}

// Run executes the crawl and returns the final state. The returned state is
// also valid on error: it reflects everything flushed before the fault.
func (c *Crawler) Run(ctx context.Context, opts Options) (*scraper.CrawlState, error) {
	state := opts.State
	if state == nil {
		state = scraper.NewCrawlState()
	}

	startPage := opts.StartPage
	if startPage < 1 {
		startPage = 1
	}

	endPage, err := c.resolveEndPage(ctx, opts)
	if err != nil {
		return state, err
	}

	c.emit(ProgressEvent{Type: ProgressResolved, Page: startPage, TotalPages: endPage})

	seen := newSeenGuard()

	for page := startPage; page <= endPage; page++ {
		if c.PageLimiter != nil && page > startPage {
			if err := c.PageLimiter.Wait(ctx); err != nil {
				return state, err
			}
		}

		urls, err := c.Catalog.ItemURLs(ctx, opts.Query, page)
		if err != nil {
			// A page that cannot be listed yields no items; the walk
			// records nothing for it and moves on.
			c.emit(ProgressEvent{Type: ProgressPageCompleted, Page: page, TotalPages: endPage, Error: err,
				Successes: state.Successes, Failures: state.Failures})
			continue
		}

		// First empty page is the authoritative end-of-content signal,
		// overriding any numeric bound including force mode.
		if len(urls) == 0 {
			c.emit(ProgressEvent{Type: ProgressPageEmpty, Page: page, TotalPages: endPage})
			break
		}

		// A page made of nothing but repeats is not end-of-content;
		// the catalog merely shifted under us.
		urls = seen.filterNew(urls)

		c.emit(ProgressEvent{Type: ProgressPageStarted, Page: page, TotalPages: endPage, Items: len(urls)})

		records, successes, failures := c.pool(page, endPage, len(urls), state).Process(ctx, urls)
		state.MergePage(records, successes, failures)

		if err := c.flush(ctx, state); err != nil {
			return state, fmt.Errorf("flush after page %d: %w", page, err)
		}

		c.emit(ProgressEvent{
			Type:       ProgressPageCompleted,
			Page:       page,
			TotalPages: endPage,
			Items:      len(urls),
			Successes:  state.Successes,
			Failures:   state.Failures,
		})
	}

	c.emit(ProgressEvent{Type: ProgressFinished, TotalPages: endPage,
		Successes: state.Successes, Failures: state.Failures})

	return state, nil
}

// resolveEndPage determines the last page to walk from the pagination probe,
// the user-supplied ceiling and the force switch.
func (c *Crawler) resolveEndPage(ctx context.Context, opts Options) (int, error) {
	maxPages, err := c.Catalog.PageCount(ctx, opts.Query)
	if err != nil {
		// Non-fatal: treat the catalog as single-page and keep going.
		maxPages = 1
		c.emit(ProgressEvent{Type: ProgressResolveFailed, Error: err})
	}
	if maxPages < 1 {
		maxPages = 1
	}

	endPage := opts.EndPage
	switch {
	case endPage <= 0:
		endPage = maxPages
	case opts.Force:
		if endPage > MaxForcedPages {
			endPage = MaxForcedPages
		}
	default:
		if endPage > maxPages {
			endPage = maxPages
		}
	}
	return endPage, nil
}

// pool builds the fetch pool for one page, routing item events through the
// progress callback.
func (c *Crawler) pool(page, totalPages, items int, state *scraper.CrawlState) *Pool {
	completed := 0
	return &Pool{
		Fetcher:     c.Fetcher,
		Extractor:   c.Extractor,
		Limiter:     c.ItemLimiter,
		Concurrency: c.Concurrency,
		OnItem: func(url string, err error) {
			completed++
			event := ProgressEvent{
				Page:       page,
				TotalPages: totalPages,
				URL:        url,
				Items:      items,
				Completed:  completed,
				Successes:  state.Successes,
				Failures:   state.Failures,
			}
			if err != nil {
				event.Type = ProgressItemFailed
				event.Error = err
			} else {
				event.Type = ProgressItemCompleted
			}
			c.emit(event)
		},
	}
}

// flush rewrites every configured output artifact from the current state.
func (c *Crawler) flush(ctx context.Context, state *scraper.CrawlState) error {
	for _, w := range c.Writers {
		if err := w.Flush(ctx, state); err != nil {
			return err
		}
	}
	c.emit(ProgressEvent{Type: ProgressFlushed, Page: state.Pages,
		Successes: state.Successes, Failures: state.Failures})
	return nil
}
