package sqlite_test

import (
	"context"
	"testing"

	scraper "github.com/antaww/tcgcollector-scraper"
	"github.com/antaww/tcgcollector-scraper/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func record(url string, fields map[string]string) *scraper.Record {
	r := scraper.NewRecord(url)
	for name, value := range fields {
		r.Set(name, value)
	}
	return r
}

func TestCheckpointStore(t *testing.T) {
	t.Parallel()

	t.Run("load without a checkpoint", func(t *testing.T) {
		t.Parallel()

		db := openDB(t)
		store := sqlite.NewCheckpointStore(db, scraper.SearchQuery{Search: "pikachu"})

		_, err := store.Load(context.Background())
		require.Error(t, err)
		assert.Equal(t, scraper.ENOTFOUND, scraper.ErrorCode(err))
	})

	t.Run("flush and load round-trips the state", func(t *testing.T) {
		t.Parallel()

		db := openDB(t)
		query := scraper.SearchQuery{Search: "pikachu"}
		store := sqlite.NewCheckpointStore(db, query)

		state := scraper.NewCrawlState()
		state.MergePage([]*scraper.Record{
			record("https://example.com/1", map[string]string{"name": "Pikachu", "card_number": "25/102"}),
			record("https://example.com/2", map[string]string{"name": "Raichu"}),
		}, 2, 1)

		require.NoError(t, store.Flush(context.Background(), state))

		loaded, err := store.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, loaded.Pages)
		assert.Equal(t, 2, loaded.Successes)
		assert.Equal(t, 1, loaded.Failures)
		require.Len(t, loaded.Records, 2)
		assert.Equal(t, "https://example.com/1", loaded.Records[0].URL)
		assert.Equal(t, "25/102", loaded.Records[0].Get("card_number"))
		assert.Equal(t, "Raichu", loaded.Records[1].Get("name"))
	})

	t.Run("repeated flushes replace the snapshot", func(t *testing.T) {
		t.Parallel()

		db := openDB(t)
		store := sqlite.NewCheckpointStore(db, scraper.SearchQuery{Search: "gible"})

		state := scraper.NewCrawlState()
		state.MergePage([]*scraper.Record{record("https://example.com/1", nil)}, 1, 0)
		require.NoError(t, store.Flush(context.Background(), state))

		state.MergePage([]*scraper.Record{record("https://example.com/2", nil)}, 1, 0)
		require.NoError(t, store.Flush(context.Background(), state))

		loaded, err := store.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, loaded.Pages)
		assert.Len(t, loaded.Records, 2)
	})

	t.Run("checkpoints are scoped by query identity", func(t *testing.T) {
		t.Parallel()

		db := openDB(t)
		pikachu := sqlite.NewCheckpointStore(db, scraper.SearchQuery{Search: "pikachu"})
		gible := sqlite.NewCheckpointStore(db, scraper.SearchQuery{Search: "gible"})

		state := scraper.NewCrawlState()
		state.MergePage([]*scraper.Record{record("https://example.com/1", nil)}, 1, 0)
		require.NoError(t, pikachu.Flush(context.Background(), state))

		_, err := gible.Load(context.Background())
		assert.Equal(t, scraper.ENOTFOUND, scraper.ErrorCode(err))
	})

	t.Run("clear removes the snapshot", func(t *testing.T) {
		t.Parallel()

		db := openDB(t)
		store := sqlite.NewCheckpointStore(db, scraper.SearchQuery{Search: "pikachu"})

		state := scraper.NewCrawlState()
		state.MergePage([]*scraper.Record{record("https://example.com/1", nil)}, 1, 0)
		require.NoError(t, store.Flush(context.Background(), state))
		require.NoError(t, store.Clear(context.Background()))

		_, err := store.Load(context.Background())
		assert.Equal(t, scraper.ENOTFOUND, scraper.ErrorCode(err))
	})
}

func TestQueryHash(t *testing.T) {
	t.Parallel()

	base := scraper.SearchQuery{Search: "pikachu", PerPage: 60}

	// Page size default and explicit value hash the same.
	assert.Equal(t, sqlite.QueryHash(scraper.SearchQuery{Search: "pikachu"}), sqlite.QueryHash(base))

	other := base
	other.Japanese = true
	assert.NotEqual(t, sqlite.QueryHash(base), sqlite.QueryHash(other))
}
