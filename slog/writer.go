package slog

import (
	"context"
	"log/slog"
	"time"

	scraper "github.com/antaww/tcgcollector-scraper"
)

// Ensure LoggingWriter implements scraper.StateWriter.
var _ scraper.StateWriter = (*LoggingWriter)(nil)

// LoggingWriter wraps a StateWriter with logging per flush.
type LoggingWriter struct {
	next   scraper.StateWriter
	logger *slog.Logger
}

// NewLoggingWriter creates a new LoggingWriter.
func NewLoggingWriter(next scraper.StateWriter, logger *slog.Logger) *LoggingWriter {
	return &LoggingWriter{next: next, logger: logger}
}

// Flush delegates to the wrapped writer and logs the operation.
func (w *LoggingWriter) Flush(ctx context.Context, state *scraper.CrawlState) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("flush",
			"records", len(state.Records),
			"pages", state.Pages,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.Flush(ctx, state)
}
