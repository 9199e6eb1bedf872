package fs

import (
	"context"
	"encoding/csv"
	"io"

	scraper "github.com/antaww/tcgcollector-scraper"
)

// Ensure CSVWriter implements scraper.StateWriter at compile time.
var _ scraper.StateWriter = (*CSVWriter)(nil)

// CSVWriter persists crawl state snapshots as a CSV file. The column set is
// the sorted union of field names across all records and is recomputed on
// every flush, since new fields can appear as the crawl proceeds. Records
// missing a column get an empty cell.
type CSVWriter struct {
	path string
}

// NewCSVWriter creates a CSVWriter targeting the given path.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Path returns the output file path.
func (w *CSVWriter) Path() string { return w.path }

func (w *CSVWriter) Flush(ctx context.Context, state *scraper.CrawlState) error {
	names := state.FieldNames()

	return writeFileAtomic(w.path, func(out io.Writer) error {
		cw := csv.NewWriter(out)
		if err := cw.Write(names); err != nil {
			return err
		}

		row := make([]string, len(names))
		for _, r := range state.Records {
			for i, name := range names {
				row[i] = r.Get(name)
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}

		cw.Flush()
		return cw.Error()
	})
}
