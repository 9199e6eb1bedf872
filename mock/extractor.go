package mock

import scraper "github.com/antaww/tcgcollector-scraper"

var _ scraper.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of scraper.Extractor.
type Extractor struct {
	ExtractFn func(html string, url string) (*scraper.Record, error)
}

func (e *Extractor) Extract(html string, url string) (*scraper.Record, error) {
	return e.ExtractFn(html, url)
}
