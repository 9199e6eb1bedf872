package mock

import (
	"context"

	scraper "github.com/antaww/tcgcollector-scraper"
)

var _ scraper.Limiter = (*Limiter)(nil)

// Limiter is a mock implementation of scraper.Limiter.
// With a nil WaitFn it never blocks, which keeps tests fast.
type Limiter struct {
	WaitFn func(ctx context.Context) error
}

func (l *Limiter) Wait(ctx context.Context) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx)
}
