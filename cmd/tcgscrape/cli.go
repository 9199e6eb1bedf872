package main

import (
	"context"
	"io"
	"time"

	scraper "github.com/antaww/tcgcollector-scraper"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Fetcher   scraper.Fetcher
	Catalog   scraper.CatalogService
	Extractor scraper.Extractor

	// Now stands in for time.Now so tests can pin generated file names.
	Now func() time.Time
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Crawl  CrawlCmd  `cmd:"" help:"Crawl the card catalog and extract card data"`
	Images ImagesCmd `cmd:"" help:"Collect card image URLs from the catalog listing"`
	Lookup LookupCmd `cmd:"" help:"Look up cards from a CSV of names and collection numbers"`
}

// queryFlags are the catalog search flags shared by the crawl and images
// commands.
type queryFlags struct {
	Search  string `short:"s" help:"Card search term (empty means all cards)"`
	Order   string `enum:",oldToNew,newToOld" default:"" help:"Release date order"`
	PerPage int    `name:"per-page" default:"60" help:"Cards per listing page (30, 60 or 120)"`
	SortBy  string `name:"sort-by" enum:",rarityAsc,rarityDesc" default:"" help:"Rarity sort mode"`
	JP      bool   `name:"jp" help:"Use the Japanese catalog"`
}

func (f queryFlags) query() scraper.SearchQuery {
	return scraper.SearchQuery{
		Search:   f.Search,
		PerPage:  f.PerPage,
		Order:    f.Order,
		SortBy:   f.SortBy,
		Japanese: f.JP,
	}
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	queryFlags

	StartPage int    `name:"start-page" default:"1" help:"First listing page to crawl"`
	EndPage   int    `name:"end-page" help:"Last listing page (default: all resolved pages)"`
	Force     bool   `short:"f" help:"Honor --end-page beyond the resolved page count"`
	Format    string `enum:"csv,json" default:"csv" help:"Output format"`
	Output    string `short:"o" help:"Output base name (default: derived from the search term)"`
	Workers   int    `short:"c" default:"1" help:"Concurrent card fetch limit"`
	Resume    bool   `help:"Resume an interrupted crawl of the same query"`
	DB        string `help:"Checkpoint database path (default: tcgscrape.db next to the output)"`
	Verbose   bool   `short:"v" help:"Log every request to stderr"`
}

// ImagesCmd is the "images" subcommand.
type ImagesCmd struct {
	queryFlags

	EndPage int    `name:"end-page" help:"Last listing page (default: all resolved pages)"`
	Force   bool   `short:"f" help:"Honor --end-page beyond the resolved page count"`
	Output  string `short:"o" help:"Output file (default: derived from the search term)"`
	Verbose bool   `short:"v" help:"Log every request to stderr"`
}

// LookupCmd is the "lookup" subcommand.
type LookupCmd struct {
	Input   string `short:"i" required:"" help:"CSV file with name and number columns"`
	Format  string `enum:"csv,json" default:"csv" help:"Output format"`
	Output  string `short:"o" help:"Output base name (default: derived from the input name)"`
	Workers int    `short:"c" default:"1" help:"Concurrent card fetch limit"`
	JP      bool   `name:"jp" help:"Search the Japanese catalog"`
	Verbose bool   `short:"v" help:"Log every request to stderr"`
}
