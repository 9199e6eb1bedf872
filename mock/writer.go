package mock

import (
	"context"

	scraper "github.com/antaww/tcgcollector-scraper"
)

var _ scraper.StateWriter = (*StateWriter)(nil)

// StateWriter is a mock implementation of scraper.StateWriter.
type StateWriter struct {
	FlushFn func(ctx context.Context, state *scraper.CrawlState) error
}

func (w *StateWriter) Flush(ctx context.Context, state *scraper.CrawlState) error {
	return w.FlushFn(ctx, state)
}
