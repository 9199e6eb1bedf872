package main

import (
	"fmt"

	scraper "github.com/antaww/tcgcollector-scraper"
	"github.com/antaww/tcgcollector-scraper/crawl"
	"github.com/antaww/tcgcollector-scraper/fs"
	"github.com/antaww/tcgcollector-scraper/sqlite"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	query := c.query()
	if err := query.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scraper.ErrorMessage(err))
		return err
	}

	base := c.Output
	if base == "" {
		base = fs.OutputBase(c.Search, "all_cards", c.JP, deps.Now())
	}

	var writers []scraper.StateWriter
	switch c.Format {
	case "json":
		writers = append(writers, fs.NewJSONWriter(base+".json"))
	default:
		writers = append(writers, fs.NewCSVWriter(base+".csv"))
	}

	opts := crawl.Options{
		Query:     query,
		StartPage: c.StartPage,
		EndPage:   c.EndPage,
		Force:     c.Force,
	}

	// The checkpoint store is wired whenever resume is in play, so the
	// crawl can be picked up after a crash.
	if c.Resume || c.DB != "" {
		dbPath := c.DB
		if dbPath == "" {
			dbPath = defaultDBPath()
		}
		db := sqlite.NewDB(dbPath)
		if err := db.Open(); err != nil {
			return fmt.Errorf("failed to open checkpoint database at %q: %w", dbPath, err)
		}
		defer db.Close()

		store := sqlite.NewCheckpointStore(db, query)
		writers = append(writers, store)

		if c.Resume {
			prior, err := store.Load(deps.Ctx)
			switch scraper.ErrorCode(err) {
			case "":
				opts.State = prior
				opts.StartPage = prior.Pages + 1
				fmt.Fprintf(deps.Stdout, "Resuming from page %d (%d cards loaded)\n",
					opts.StartPage, len(prior.Records))
			case scraper.ENOTFOUND:
				fmt.Fprintln(deps.Stdout, "No checkpoint found, starting fresh")
			default:
				return err
			}
		}
	}

	crawler := &crawl.Crawler{
		Catalog:     deps.Catalog,
		Fetcher:     deps.Fetcher,
		Extractor:   deps.Extractor,
		Writers:     writers,
		PageLimiter: crawl.NewPoliteLimiter(pageDelay),
		ItemLimiter: crawl.NewPoliteLimiter(itemDelay),
		Concurrency: c.Workers,
		Progress:    newProgressPrinter(deps.Stdout, deps.Stderr),
	}

	state, err := crawler.Run(deps.Ctx, opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scraper.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d cards to %s.%s (%d ok, %d failed, %s)\n",
		len(state.Records), base, c.Format, state.Successes, state.Failures,
		crawl.FormatDuration(state.Elapsed()))
	return nil
}
