package crawl_test

import (
	"testing"
	"time"

	"github.com/antaww/tcgcollector-scraper/crawl"
	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		d    time.Duration
		want string
	}{
		{12500 * time.Millisecond, "12.5 seconds"},
		{59 * time.Second, "59.0 seconds"},
		{90 * time.Second, "1.5 minutes"},
		{59 * time.Minute, "59.0 minutes"},
		{90 * time.Minute, "1.5 hours"},
		{25 * time.Hour, "25.0 hours"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, crawl.FormatDuration(tt.d))
	}
}

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	url := "https://www.tcgcollector.com/cards/12345/pikachu-ex-surging-sparks"

	t.Run("short URL unchanged", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, url, crawl.TruncateURL(url, 200))
	})

	t.Run("keeps the tail", func(t *testing.T) {
		t.Parallel()
		got := crawl.TruncateURL(url, 30)
		assert.Len(t, got, 30)
		assert.Equal(t, "...", got[:3])
		assert.Contains(t, got, "surging-sparks")
	})

	t.Run("degenerate lengths", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", crawl.TruncateURL(url, 0))
		assert.Equal(t, url[:2], crawl.TruncateURL(url, 2))
	})
}
