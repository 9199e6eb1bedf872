package scraper

import (
	"context"
	"sort"
	"time"
)

// CrawlState accumulates extracted records and progress counters over a
// crawl. Under concurrent fetching the record order is completion order, not
// request order. The crawl driver owns the state exclusively and mutates it
// only between fetch-pool calls; workers never touch it.
type CrawlState struct {
	// Records in processing completion order.
	Records []*Record

	// Pages is the number of listing pages fully processed.
	Pages int

	// Successes and Failures count processed items. An item whose
	// document was fetched counts as a success even when some field
	// chains came up empty; a fetch or parse failure counts as a
	// failure and produces no record.
	Successes int
	Failures  int

	// StartedAt is when the crawl began.
	StartedAt time.Time
}

// NewCrawlState returns an empty state with the start time set.
func NewCrawlState() *CrawlState {
	return &CrawlState{StartedAt: time.Now()}
}

// MergePage folds one completed page's pool results into the state.
func (s *CrawlState) MergePage(records []*Record, successes, failures int) {
	s.Records = append(s.Records, records...)
	s.Successes += successes
	s.Failures += failures
	s.Pages++
}

// Processed returns the total number of items processed so far.
func (s *CrawlState) Processed() int {
	return s.Successes + s.Failures
}

// Elapsed returns the time since the crawl started.
func (s *CrawlState) Elapsed() time.Duration {
	return time.Since(s.StartedAt)
}

// FieldNames returns the sorted union of field names across all records,
// URLField included. The set can grow page-to-page as new fields appear, so
// writers recompute it on every flush.
func (s *CrawlState) FieldNames() []string {
	set := make(map[string]bool)
	for _, r := range s.Records {
		for name := range r.Fields {
			set[name] = true
		}
	}
	names := make([]string, 0, len(set)+1)
	names = append(names, URLField)
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StateWriter persists a crawl state snapshot to durable storage.
// Implementations rewrite the whole artifact on every call so the output is
// always internally consistent; a crash loses at most one in-flight page.
type StateWriter interface {
	Flush(ctx context.Context, state *CrawlState) error
}
