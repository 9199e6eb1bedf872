// Package csv loads batch-lookup input from tabular files.
package csv

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strings"

	scraper "github.com/antaww/tcgcollector-scraper"
)

// Default column headers for lookup input files.
const (
	DefaultNameColumn   = "name"
	DefaultNumberColumn = "number"
)

// Ensure Loader implements scraper.LookupSource at compile time.
var _ scraper.LookupSource = (*Loader)(nil)

// Loader reads lookup entries from a CSV file with a header row. Malformed
// rows are reported as failures without stopping the load.
type Loader struct {
	path         string
	nameColumn   string
	numberColumn string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithNameColumn overrides the header of the card-name column.
func WithNameColumn(name string) LoaderOption {
	return func(l *Loader) { l.nameColumn = name }
}

// WithNumberColumn overrides the header of the collection-number column.
func WithNumberColumn(name string) LoaderOption {
	return func(l *Loader) { l.numberColumn = name }
}

// NewLoader creates a Loader for the given file path.
func NewLoader(path string, opts ...LoaderOption) *Loader {
	l := &Loader{
		path:         path,
		nameColumn:   DefaultNameColumn,
		numberColumn: DefaultNumberColumn,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the file and returns the parsed entries alongside the rows
// that could not be parsed. Entry indexes are zero-based data-row positions.
func (l *Loader) Load(ctx context.Context) ([]scraper.LookupEntry, []scraper.LookupFailure, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are per-row failures, not a load error
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil, scraper.Errorf(scraper.EINVALID, "lookup file %s is empty", l.path)
	}
	if err != nil {
		return nil, nil, err
	}

	nameIdx, numberIdx := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case l.nameColumn:
			nameIdx = i
		case l.numberColumn:
			numberIdx = i
		}
	}
	if nameIdx == -1 || numberIdx == -1 {
		return nil, nil, scraper.Errorf(scraper.EINVALID,
			"lookup file %s needs %q and %q columns", l.path, l.nameColumn, l.numberColumn)
	}

	var (
		entries  []scraper.LookupEntry
		failures []scraper.LookupFailure
	)
	for index := 0; ; index++ {
		if err := ctx.Err(); err != nil {
			return entries, failures, err
		}

		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			failures = append(failures, scraper.LookupFailure{Index: index, Err: err})
			continue
		}

		if len(row) <= nameIdx || len(row) <= numberIdx {
			failures = append(failures, scraper.LookupFailure{Index: index, Raw: row,
				Err: scraper.Errorf(scraper.EINVALID, "row has %d columns", len(row))})
			continue
		}

		name := strings.TrimSpace(row[nameIdx])
		number := strings.TrimSpace(row[numberIdx])
		if name == "" || number == "" {
			failures = append(failures, scraper.LookupFailure{Index: index, Raw: row,
				Err: scraper.Errorf(scraper.EINVALID, "name and number required")})
			continue
		}

		entries = append(entries, scraper.NewLookupEntry(index, name, number))
	}

	return entries, failures, nil
}
