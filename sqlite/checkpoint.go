package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	scraper "github.com/antaww/tcgcollector-scraper"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ scraper.StateWriter = (*CheckpointStore)(nil)

// CheckpointStore persists crawl state snapshots keyed by the query's
// canonical identity, so an interrupted crawl of the same query can resume
// with its prior records preloaded. It doubles as a StateWriter: flushing
// after every page is what makes the checkpoint crash-consistent.
type CheckpointStore struct {
	db       *DB
	queryKey string
	hash     string
}

// NewCheckpointStore creates a store scoped to one search query.
func NewCheckpointStore(db *DB, query scraper.SearchQuery) *CheckpointStore {
	key := query.Key()
	return &CheckpointStore{
		db:       db,
		queryKey: key,
		hash:     QueryHash(query),
	}
}

// QueryHash returns the checkpoint key for a query: the xxhash of its
// canonical identity string, hex-encoded.
func QueryHash(query scraper.SearchQuery) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(query.Key()))
}

// Flush replaces the stored snapshot with the given state in one
// transaction. A crash mid-flush keeps the previous snapshot intact.
func (s *CheckpointStore) Flush(ctx context.Context, state *scraper.CrawlState) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	crawlID, err := s.findOrCreateCrawl(ctx, tx, state)
	if err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx, `
		UPDATE crawls
		SET pages = ?, successes = ?, failures = ?, updated_at = ?
		WHERE id = ?
	`, state.Pages, state.Successes, state.Failures, now, crawlID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM records WHERE crawl_id = ?", crawlID); err != nil {
		return err
	}

	for position, r := range state.Records {
		fields, err := json.Marshal(r.Fields)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO records (crawl_id, position, url, fields)
			VALUES (?, ?, ?, ?)
		`, crawlID, position, r.URL, string(fields)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Load restores the stored snapshot for the query. Returns ENOTFOUND when
// no checkpoint exists.
func (s *CheckpointStore) Load(ctx context.Context) (*scraper.CrawlState, error) {
	var (
		crawlID   string
		state     scraper.CrawlState
		startedAt string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, pages, successes, failures, started_at
		FROM crawls
		WHERE query_hash = ?
	`, s.hash).Scan(&crawlID, &state.Pages, &state.Successes, &state.Failures, &startedAt)
	if err == sql.ErrNoRows {
		return nil, scraper.Errorf(scraper.ENOTFOUND, "no checkpoint for query %q", s.queryKey)
	}
	if err != nil {
		return nil, err
	}

	state.StartedAt, err = time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse started_at: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT url, fields
		FROM records
		WHERE crawl_id = ?
		ORDER BY position
	`, crawlID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var url, fields string
		if err := rows.Scan(&url, &fields); err != nil {
			return nil, err
		}
		r := scraper.NewRecord(url)
		if err := json.Unmarshal([]byte(fields), &r.Fields); err != nil {
			return nil, fmt.Errorf("failed to parse record fields: %w", err)
		}
		state.Records = append(state.Records, r)
	}

	return &state, rows.Err()
}

// Clear removes the stored snapshot for the query, if any.
func (s *CheckpointStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM crawls WHERE query_hash = ?", s.hash)
	return err
}

// findOrCreateCrawl returns the crawl row id for the query, creating one
// with a fresh run id when this is the first flush.
func (s *CheckpointStore) findOrCreateCrawl(ctx context.Context, tx *sql.Tx, state *scraper.CrawlState) (string, error) {
	var crawlID string
	err := tx.QueryRowContext(ctx,
		"SELECT id FROM crawls WHERE query_hash = ?", s.hash).Scan(&crawlID)
	if err == nil {
		return crawlID, nil
	}
	if err != sql.ErrNoRows {
		return "", err
	}

	crawlID = uuid.New().String()
	startedAt := state.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO crawls (id, query_hash, query_key, started_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, crawlID, s.hash, s.queryKey, startedAt.UTC().Format(time.RFC3339), now)
	if err != nil {
		return "", err
	}
	return crawlID, nil
}
