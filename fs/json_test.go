package fs_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	scraper "github.com/antaww/tcgcollector-scraper"
	"github.com/antaww/tcgcollector-scraper/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONWriter_Flush(t *testing.T) {
	t.Parallel()

	t.Run("writes flat record objects", func(t *testing.T) {
		t.Parallel()

		state := scraper.NewCrawlState()
		state.MergePage([]*scraper.Record{
			record("https://example.com/1", map[string]string{"name": "Pikachu"}),
		}, 1, 0)

		path := filepath.Join(t.TempDir(), "cards.json")
		w := fs.NewJSONWriter(path)
		require.NoError(t, w.Flush(context.Background(), state))

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var decoded []map[string]string
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.Len(t, decoded, 1)
		assert.Equal(t, "https://example.com/1", decoded[0]["url"])
		assert.Equal(t, "Pikachu", decoded[0]["name"])
	})

	t.Run("empty state writes an empty array", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "cards.json")
		w := fs.NewJSONWriter(path)
		require.NoError(t, w.Flush(context.Background(), scraper.NewCrawlState()))

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var decoded []map[string]string
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Empty(t, decoded)
		assert.NotContains(t, string(data), "null")
	})

	t.Run("round-trips through Record JSON", func(t *testing.T) {
		t.Parallel()

		state := scraper.NewCrawlState()
		state.MergePage([]*scraper.Record{
			record("https://example.com/1", map[string]string{"name": "Gible", "card_number": "45/150"}),
		}, 1, 0)

		path := filepath.Join(t.TempDir(), "cards.json")
		w := fs.NewJSONWriter(path)
		require.NoError(t, w.Flush(context.Background(), state))

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var decoded []*scraper.Record
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.Len(t, decoded, 1)
		assert.Equal(t, "https://example.com/1", decoded[0].URL)
		assert.Equal(t, "45/150", decoded[0].Get("card_number"))
	})
}

func TestWriteURLList(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "images.txt")
	urls := []string{
		"https://img.example.com/a.webp",
		"https://img.example.com/b.webp",
	}
	require.NoError(t, fs.WriteURLList(path, urls))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/a.webp;\nhttps://img.example.com/b.webp;\n", string(data))

	back, err := fs.ReadURLList(path)
	require.NoError(t, err)
	assert.Equal(t, urls, back)
}
