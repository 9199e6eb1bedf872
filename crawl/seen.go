package crawl

import "github.com/antaww/tcgcollector-scraper/bloom"

// Seen-guard sizing. The false positive rate is kept very low because a
// false positive silently skips an item.
const (
	seenExpectedItems     = 50000
	seenFalsePositiveRate = 0.0001
)

// seenGuard tracks item URLs already handed to the pool during one run.
// A shifting catalog can repeat an item across page boundaries between
// requests; the guard makes sure each reference is consumed at most once.
type seenGuard struct {
	filter *bloom.Filter
}

func newSeenGuard() *seenGuard {
	return &seenGuard{filter: bloom.NewFilter(seenExpectedItems, seenFalsePositiveRate)}
}

// filterNew returns the URLs not seen before, marking them seen.
func (g *seenGuard) filterNew(urls []string) []string {
	fresh := urls[:0:0]
	for _, url := range urls {
		if g.filter.Test(url) {
			continue
		}
		g.filter.Add(url)
		fresh = append(fresh, url)
	}
	return fresh
}
