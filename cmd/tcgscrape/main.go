package main

import (
	"context"
	"fmt"
	"io"
	logslog "log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	scraper "github.com/antaww/tcgcollector-scraper"
	"github.com/antaww/tcgcollector-scraper/goquery"
	tcghttp "github.com/antaww/tcgcollector-scraper/http"
	tcgslog "github.com/antaww/tcgcollector-scraper/slog"
)

// Politeness pacing between requests. Listing pages are paced harder than
// card pages because each one fans out into many card fetches.
const (
	pageDelay = 1 * time.Second
	itemDelay = 500 * time.Millisecond
)

// defaultDBPath returns the checkpoint database path when --db is not given.
func defaultDBPath() string {
	if path := os.Getenv("TCGSCRAPE_DB"); path != "" {
		return path
	}
	return "tcgscrape.db"
}

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Service overrides for end-to-end testing. Nil fields get the real
	// implementations wired in Run.
	Fetcher   scraper.Fetcher
	Catalog   scraper.CatalogService
	Extractor scraper.Extractor
	Now       func() time.Time
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Now: time.Now}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:       ctx,
		Stdout:    stdout,
		Stderr:    stderr,
		Fetcher:   m.Fetcher,
		Catalog:   m.Catalog,
		Extractor: m.Extractor,
		Now:       m.Now,
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("tcgscrape"),
		kong.Description("Scrape card data and images from the TCG Collector catalog"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'tcgscrape --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	verbose := cli.Crawl.Verbose || cli.Images.Verbose || cli.Lookup.Verbose

	fetcher := deps.Fetcher
	if fetcher == nil {
		fetcher = tcghttp.NewFetcher()
	}
	if verbose {
		logger := logslog.New(logslog.NewTextHandler(stderr,
			&logslog.HandlerOptions{Level: logslog.LevelDebug}))
		fetcher = tcgslog.NewLoggingFetcher(fetcher, logger)
	}
	defer fetcher.Close()
	deps.Fetcher = fetcher

	if deps.Catalog == nil {
		deps.Catalog = goquery.NewCatalog(fetcher)
	}
	if deps.Extractor == nil {
		deps.Extractor = goquery.NewExtractor(goquery.DefaultFieldRules()...)
	}

	return kongCtx.Run(deps)
}
