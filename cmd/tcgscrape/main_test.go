package main_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	scraper "github.com/antaww/tcgcollector-scraper"
	main "github.com/antaww/tcgcollector-scraper/cmd/tcgscrape"
	"github.com/antaww/tcgcollector-scraper/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	return context.Background()
}

// testMain returns a Main with a three-page catalog of two cards each and an
// extractor that fills a name field.
func testMain() *main.Main {
	m := main.NewMain()
	m.Now = func() time.Time { return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC) }
	m.Fetcher = &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) { return "<html></html>", nil },
	}
	m.Catalog = &mock.CatalogService{
		PageCountFn: func(_ context.Context, _ scraper.SearchQuery) (int, error) { return 3, nil },
		ItemURLsFn: func(_ context.Context, _ scraper.SearchQuery, page int) ([]string, error) {
			if page > 3 {
				return nil, nil
			}
			return []string{
				fmt.Sprintf("https://example.com/cards/p%d-0", page),
				fmt.Sprintf("https://example.com/cards/p%d-1", page),
			}, nil
		},
		ImageURLsFn: func(_ context.Context, _ scraper.SearchQuery, page int) ([]string, error) {
			if page > 3 {
				return nil, nil
			}
			return []string{fmt.Sprintf("https://img.example.com/p%d.webp", page)}, nil
		},
	}
	m.Extractor = &mock.Extractor{
		ExtractFn: func(_ string, url string) (*scraper.Record, error) {
			r := scraper.NewRecord(url)
			r.Set("name", "Pikachu")
			return r, nil
		},
	}
	return m
}

func TestCmdCrawl(t *testing.T) {
	t.Parallel()

	t.Run("crawls and writes the CSV output", func(t *testing.T) {
		t.Parallel()

		base := filepath.Join(t.TempDir(), "out")
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		m := testMain()
		err := m.Run(testContext(), []string{"crawl", "--output", base, "--end-page", "1"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Saved 2 cards")

		data, err := os.ReadFile(base + ".csv")
		require.NoError(t, err)
		assert.Contains(t, string(data), "name,url")
		assert.Contains(t, string(data), "Pikachu")
	})

	t.Run("json format", func(t *testing.T) {
		t.Parallel()

		base := filepath.Join(t.TempDir(), "out")
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		m := testMain()
		err := m.Run(testContext(), []string{"crawl", "--output", base, "--end-page", "1", "--format", "json"}, stdout, stderr)

		require.NoError(t, err)
		data, err := os.ReadFile(base + ".json")
		require.NoError(t, err)
		assert.Contains(t, string(data), `"name": "Pikachu"`)
	})

	t.Run("rejects an invalid page size", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		m := testMain()
		err := m.Run(testContext(), []string{"crawl", "--per-page", "45"}, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "page size")
	})

	t.Run("resume picks up after the checkpointed page", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		base := filepath.Join(dir, "out")
		dbPath := filepath.Join(dir, "checkpoint.db")

		m := testMain()
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		err := m.Run(testContext(), []string{"crawl", "--output", base,
			"--end-page", "1", "--db", dbPath}, stdout, stderr)
		require.NoError(t, err)

		// Second run resumes from page 2 and crawls the remaining pages.
		stdout.Reset()
		err = m.Run(testContext(), []string{"crawl", "--output", base,
			"--resume", "--db", dbPath}, stdout, stderr)
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "Resuming from page 2")
		assert.Contains(t, stdout.String(), "Saved 6 cards")
	})

	t.Run("resume without a checkpoint starts fresh", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		m := testMain()
		err := m.Run(testContext(), []string{"crawl",
			"--output", filepath.Join(dir, "out"),
			"--resume", "--db", filepath.Join(dir, "checkpoint.db")}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No checkpoint found")
		assert.Contains(t, stdout.String(), "Saved 6 cards")
	})
}

func TestCmdImages(t *testing.T) {
	t.Parallel()

	t.Run("collects image URLs into a list file", func(t *testing.T) {
		t.Parallel()

		output := filepath.Join(t.TempDir(), "images.txt")
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		m := testMain()
		err := m.Run(testContext(), []string{"images", "--output", output}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Saved 3 image URLs")

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Contains(t, string(data), "https://img.example.com/p1.webp;\n")
	})
}

func TestCmdLookup(t *testing.T) {
	t.Parallel()

	t.Run("resolves entries from a CSV file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := filepath.Join(dir, "cards.csv")
		require.NoError(t, os.WriteFile(input, []byte("name,number\nPikachu,25/102\n"), 0644))

		m := testMain()
		m.Extractor = &mock.Extractor{
			ExtractFn: func(_ string, url string) (*scraper.Record, error) {
				r := scraper.NewRecord(url)
				r.Set("name", "Pikachu")
				r.Set("card_number", "25/102")
				return r, nil
			},
		}

		base := filepath.Join(dir, "out")
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		err := m.Run(testContext(), []string{"lookup", "--input", input, "--output", base}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Pikachu: found as 25/102")
		assert.Contains(t, stdout.String(), "Resolved 1/1 cards")

		data, err := os.ReadFile(base + ".csv")
		require.NoError(t, err)
		assert.Contains(t, string(data), "25/102")
	})

	t.Run("missing input file", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		m := testMain()
		err := m.Run(testContext(), []string{"lookup", "--input", filepath.Join(t.TempDir(), "nope.csv")}, stdout, stderr)

		assert.Error(t, err)
	})
}

func TestMainRun(t *testing.T) {
	t.Parallel()

	t.Run("no arguments shows help and errors", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		m := testMain()
		err := m.Run(testContext(), []string{}, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
		assert.Contains(t, stdout.String(), "tcgscrape")
	})

	t.Run("help flag", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		m := testMain()
		err := m.Run(testContext(), []string{"--help"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "crawl")
		assert.Contains(t, stdout.String(), "images")
		assert.Contains(t, stdout.String(), "lookup")
	})

	t.Run("unknown command", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		m := testMain()
		err := m.Run(testContext(), []string{"frobnicate"}, stdout, stderr)

		assert.Error(t, err)
	})
}
