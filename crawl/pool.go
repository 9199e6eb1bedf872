package crawl

import (
	"context"
	"fmt"

	scraper "github.com/antaww/tcgcollector-scraper"
	"golang.org/x/sync/errgroup"
)

// Pool maps item URLs to extraction results with bounded concurrency.
//
// With Concurrency of 1 items are processed strictly in request order, with
// the politeness limiter pacing each request. With higher values a worker
// pool fans out over the URLs and results are collected in completion order;
// no inter-item delay is imposed because the concurrency bound itself limits
// load on the server.
type Pool struct {
	Fetcher   scraper.Fetcher
	Extractor scraper.Extractor

	// Limiter paces sequential requests. Ignored in concurrent mode.
	Limiter scraper.Limiter

	// Concurrency is the worker count. Values below 1 mean 1.
	Concurrency int

	// OnItem, if set, is called once per processed item from the
	// collecting goroutine, never from workers.
	OnItem func(url string, err error)
}

// itemResult holds the outcome of processing a single item URL.
type itemResult struct {
	url    string
	record *scraper.Record
	err    error
}

// Process fetches and extracts every URL. A failure on one item never
// aborts the rest: fetch errors, parse errors and worker panics are
// contained at the item boundary and counted. The counts always satisfy
// successes+failures == len(urls).
func (p *Pool) Process(ctx context.Context, urls []string) (records []*scraper.Record, successes, failures int) {
	if len(urls) == 0 {
		return nil, 0, 0
	}
	if p.Concurrency <= 1 {
		return p.processSequential(ctx, urls)
	}
	return p.processConcurrent(ctx, urls)
}

// processSequential handles items one at a time in request order.
func (p *Pool) processSequential(ctx context.Context, urls []string) (records []*scraper.Record, successes, failures int) {
	for _, url := range urls {
		if p.Limiter != nil {
			if err := p.Limiter.Wait(ctx); err != nil {
				// Context canceled: remaining items count as failed
				// so the invariant holds.
				failures = len(urls) - successes
				return records, successes, failures
			}
		}

		result := p.processItem(ctx, url)
		if result.err != nil {
			failures++
		} else {
			records = append(records, result.record)
			successes++
		}
		if p.OnItem != nil {
			p.OnItem(result.url, result.err)
		}
	}
	return records, successes, failures
}

// processConcurrent fans the URLs out over a bounded worker pool and
// collects results as they complete.
func (p *Pool) processConcurrent(ctx context.Context, urls []string) (records []*scraper.Record, successes, failures int) {
	resultCh := make(chan itemResult, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Concurrency)

	go func() {
		for _, url := range urls {
			url := url
			g.Go(func() error {
				resultCh <- p.processItem(gctx, url)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Completion order, not submission order.
	for result := range resultCh {
		if result.err != nil {
			failures++
		} else {
			records = append(records, result.record)
			successes++
		}
		if p.OnItem != nil {
			p.OnItem(result.url, result.err)
		}
	}
	return records, successes, failures
}

// processItem fetches and extracts one item. A panic inside extraction is
// converted to an error so a single misbehaving document cannot take the
// pool down.
func (p *Pool) processItem(ctx context.Context, url string) (result itemResult) {
	result.url = url

	defer func() {
		if r := recover(); r != nil {
			result.record = nil
			result.err = scraper.Errorf(scraper.EINTERNAL, "extraction panic for %s: %v", url, r)
		}
	}()

	html, err := p.Fetcher.Fetch(ctx, url)
	if err != nil {
		result.err = fmt.Errorf("fetch %s: %w", url, err)
		return result
	}

	record, err := p.Extractor.Extract(html, url)
	if err != nil {
		result.err = fmt.Errorf("extract %s: %w", url, err)
		return result
	}

	result.record = record
	return result
}
