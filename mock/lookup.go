package mock

import (
	"context"

	scraper "github.com/antaww/tcgcollector-scraper"
)

var _ scraper.LookupSource = (*LookupSource)(nil)

// LookupSource is a mock implementation of scraper.LookupSource.
type LookupSource struct {
	LoadFn func(ctx context.Context) ([]scraper.LookupEntry, []scraper.LookupFailure, error)
}

func (s *LookupSource) Load(ctx context.Context) ([]scraper.LookupEntry, []scraper.LookupFailure, error) {
	return s.LoadFn(ctx)
}
