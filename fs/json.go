package fs

import (
	"context"
	"encoding/json"
	"io"

	scraper "github.com/antaww/tcgcollector-scraper"
)

// Ensure JSONWriter implements scraper.StateWriter at compile time.
var _ scraper.StateWriter = (*JSONWriter)(nil)

// JSONWriter persists crawl state snapshots as an indented JSON array of
// flat record objects, the source URL under the "url" key.
type JSONWriter struct {
	path string
}

// NewJSONWriter creates a JSONWriter targeting the given path.
func NewJSONWriter(path string) *JSONWriter {
	return &JSONWriter{path: path}
}

// Path returns the output file path.
func (w *JSONWriter) Path() string { return w.path }

func (w *JSONWriter) Flush(ctx context.Context, state *scraper.CrawlState) error {
	records := state.Records
	if records == nil {
		records = []*scraper.Record{}
	}

	return writeFileAtomic(w.path, func(out io.Writer) error {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	})
}
