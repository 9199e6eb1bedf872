package main

import (
	"fmt"

	scraper "github.com/antaww/tcgcollector-scraper"
	"github.com/antaww/tcgcollector-scraper/crawl"
	"github.com/antaww/tcgcollector-scraper/fs"
)

// Run executes the images command.
func (c *ImagesCmd) Run(deps *Dependencies) error {
	query := c.query()
	if err := query.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scraper.ErrorMessage(err))
		return err
	}

	output := c.Output
	if output == "" {
		output = fs.OutputBase(c.Search, "all_cards", c.JP, deps.Now()) + ".txt"
	}

	crawler := &crawl.Crawler{
		Catalog:     deps.Catalog,
		Fetcher:     deps.Fetcher,
		PageLimiter: crawl.NewPoliteLimiter(pageDelay),
		Progress:    newProgressPrinter(deps.Stdout, deps.Stderr),
	}

	urls, err := crawler.CollectImages(deps.Ctx, crawl.Options{
		Query:   query,
		EndPage: c.EndPage,
		Force:   c.Force,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scraper.ErrorMessage(err))
		return err
	}

	if err := fs.WriteURLList(output, urls); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scraper.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d image URLs to %s\n", len(urls), output)
	return nil
}
