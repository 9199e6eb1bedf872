package crawl

import (
	"context"
	"time"

	scraper "github.com/antaww/tcgcollector-scraper"
	"golang.org/x/time/rate"
)

var _ scraper.Limiter = (*PoliteLimiter)(nil)

// PoliteLimiter paces requests with a fixed interval using a token bucket.
// The first Wait passes immediately; subsequent calls block until the
// interval has elapsed since the previous request. This is the crawl's only
// backpressure mechanism; there is no adaptive retry or backoff.
type PoliteLimiter struct {
	limiter *rate.Limiter
}

// NewPoliteLimiter creates a limiter allowing one request per interval,
// with a burst of 1 (no bursting).
func NewPoliteLimiter(interval time.Duration) *PoliteLimiter {
	return &PoliteLimiter{
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Wait blocks until the politeness interval allows another request.
// Returns an error if the context is canceled before the wait completes.
func (l *PoliteLimiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
