package main

import (
	"fmt"
	"path/filepath"
	"strings"

	scraper "github.com/antaww/tcgcollector-scraper"
	"github.com/antaww/tcgcollector-scraper/crawl"
	tcgcsv "github.com/antaww/tcgcollector-scraper/csv"
	"github.com/antaww/tcgcollector-scraper/fs"
)

// Run executes the lookup command.
func (c *LookupCmd) Run(deps *Dependencies) error {
	entries, rowFailures, err := tcgcsv.NewLoader(c.Input).Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scraper.ErrorMessage(err))
		return err
	}
	for _, failure := range rowFailures {
		fmt.Fprintf(deps.Stderr, "  skip row %d: %s\n", failure.Index+1, scraper.ErrorMessage(failure.Err))
	}
	if len(entries) == 0 {
		return fmt.Errorf("no usable rows in %s", c.Input)
	}

	base := c.Output
	if base == "" {
		name := strings.TrimSuffix(filepath.Base(c.Input), filepath.Ext(c.Input))
		base = fs.OutputBase(name, "lookup", c.JP, deps.Now())
	}

	var writers []scraper.StateWriter
	switch c.Format {
	case "json":
		writers = append(writers, fs.NewJSONWriter(base+".json"))
	default:
		writers = append(writers, fs.NewCSVWriter(base+".csv"))
	}

	crawler := &crawl.Crawler{
		Catalog:     deps.Catalog,
		Fetcher:     deps.Fetcher,
		Extractor:   deps.Extractor,
		Writers:     writers,
		PageLimiter: crawl.NewPoliteLimiter(pageDelay),
		ItemLimiter: crawl.NewPoliteLimiter(itemDelay),
		Concurrency: c.Workers,
	}

	state, results, err := crawler.Lookup(deps.Ctx, scraper.SearchQuery{Japanese: c.JP}, entries)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scraper.ErrorMessage(err))
		return err
	}

	for _, result := range results {
		entry := result.Entry
		switch {
		case result.Err != nil:
			fmt.Fprintf(deps.Stderr, "  %s (%s): search failed: %s\n",
				entry.Name, entry.Number, scraper.ErrorMessage(result.Err))
		case result.Record == nil:
			fmt.Fprintf(deps.Stderr, "  %s (%s): not found\n", entry.Name, entry.Number)
		case entry.Truncated:
			fmt.Fprintf(deps.Stdout, "  %s: found as %s (searched by %s)\n",
				entry.Name, result.Record.Get("card_number"), entry.Key)
		default:
			fmt.Fprintf(deps.Stdout, "  %s: found as %s\n",
				entry.Name, result.Record.Get("card_number"))
		}
	}

	fmt.Fprintf(deps.Stdout, "Resolved %d/%d cards to %s.%s (%s)\n",
		state.Successes, len(entries), base, c.Format,
		crawl.FormatDuration(state.Elapsed()))
	return nil
}
