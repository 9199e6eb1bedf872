package main

import (
	"fmt"
	"io"
	"time"

	"github.com/antaww/tcgcollector-scraper/crawl"
)

// newProgressPrinter renders crawl progress to the console: one line per
// page with running statistics and an ETA, skip lines for failed cards.
func newProgressPrinter(stdout, stderr io.Writer) crawl.ProgressFunc {
	start := time.Now()
	pagesDone := 0

	return func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressResolved:
			fmt.Fprintf(stdout, "Crawling pages %d-%d\n", event.Page, event.TotalPages)

		case crawl.ProgressResolveFailed:
			fmt.Fprintf(stderr, "warning: could not resolve page count (%v), assuming a single page\n", event.Error)

		case crawl.ProgressItemFailed:
			fmt.Fprintf(stderr, "  skip %s: %v\n", crawl.TruncateURL(event.URL, 60), event.Error)

		case crawl.ProgressPageEmpty:
			fmt.Fprintf(stdout, "Page %d is empty, stopping\n", event.Page)

		case crawl.ProgressPageCompleted:
			if event.Error != nil {
				fmt.Fprintf(stderr, "  skip page %d: %v\n", event.Page, event.Error)
				return
			}
			pagesDone++
			elapsed := time.Since(start)
			perPage := elapsed / time.Duration(pagesDone)

			fmt.Fprintf(stdout, "Page %d/%d done: %d cards (%d ok, %d failed)\n",
				event.Page, event.TotalPages, event.Items, event.Successes, event.Failures)

			processed := event.Successes + event.Failures
			if processed > 0 {
				perCard := elapsed / time.Duration(processed)
				remaining := event.TotalPages - event.Page
				fmt.Fprintf(stdout, "  elapsed %s, %s/page, %s/card, ETA %s\n",
					crawl.FormatDuration(elapsed),
					crawl.FormatDuration(perPage),
					crawl.FormatDuration(perCard),
					crawl.FormatDuration(perPage*time.Duration(remaining)))
			}
		}
	}
}
