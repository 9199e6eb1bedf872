package crawl

import (
	"context"

	scraper "github.com/antaww/tcgcollector-scraper"
)

// LookupResult is the outcome of resolving one batch-lookup entry.
type LookupResult struct {
	Entry scraper.LookupEntry

	// Record is the matched card, nil when no search result carried
	// the entry's collection number.
	Record *scraper.Record

	// Err is set when the search itself failed.
	Err error
}

// Lookup resolves each entry by searching the catalog for its name and
// matching the entry's collection-number key against the extracted
// card_number field of the first result page's candidates. Entries are
// processed sequentially with politeness pacing; a failure on one entry
// never stops the batch. Matched records are merged into the returned
// state, which is flushed to the writers after every entry.
func (c *Crawler) Lookup(ctx context.Context, base scraper.SearchQuery, entries []scraper.LookupEntry) (*scraper.CrawlState, []LookupResult, error) {
	state := scraper.NewCrawlState()
	results := make([]LookupResult, 0, len(entries))

	for i, entry := range entries {
		if c.PageLimiter != nil && i > 0 {
			if err := c.PageLimiter.Wait(ctx); err != nil {
				return state, results, err
			}
		}

		result := c.lookupEntry(ctx, base, entry, state)
		results = append(results, result)

		if err := c.flush(ctx, state); err != nil {
			return state, results, err
		}
	}

	c.emit(ProgressEvent{Type: ProgressFinished,
		Successes: state.Successes, Failures: state.Failures})
	return state, results, nil
}

// lookupEntry searches for one entry and merges the outcome into the state.
func (c *Crawler) lookupEntry(ctx context.Context, base scraper.SearchQuery, entry scraper.LookupEntry, state *scraper.CrawlState) LookupResult {
	query := base
	query.Search = entry.Name

	urls, err := c.Catalog.ItemURLs(ctx, query, 1)
	if err != nil {
		state.MergePage(nil, 0, 1)
		return LookupResult{Entry: entry, Err: err}
	}
	if len(urls) == 0 {
		state.MergePage(nil, 0, 1)
		return LookupResult{Entry: entry}
	}

	pool := &Pool{
		Fetcher:     c.Fetcher,
		Extractor:   c.Extractor,
		Limiter:     c.ItemLimiter,
		Concurrency: c.Concurrency,
	}
	candidates, _, _ := pool.Process(ctx, urls)

	for _, candidate := range candidates {
		if matchesNumber(candidate.Get("card_number"), entry.Key) {
			state.MergePage([]*scraper.Record{candidate}, 1, 0)
			return LookupResult{Entry: entry, Record: candidate}
		}
	}

	state.MergePage(nil, 0, 1)
	return LookupResult{Entry: entry}
}

// matchesNumber reports whether a card_number value carries the lookup key.
// The comparison uses the leading digit run of the number's numerator so
// "45/150" matches key "045" and vice versa.
func matchesNumber(cardNumber, key string) bool {
	if cardNumber == "" || key == "" {
		return false
	}
	got := scraper.ExtractLookupKey(cardNumber)
	if got == key {
		return true
	}
	return trimLeadingZeros(got) != "" && trimLeadingZeros(got) == trimLeadingZeros(key)
}

func trimLeadingZeros(s string) string {
	for len(s) > 1 && s[0] == '0' {
		s = s[1:]
	}
	return s
}
