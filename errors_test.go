package scraper_test

import (
	"errors"
	"fmt"
	"testing"

	scraper "github.com/antaww/tcgcollector-scraper"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("returns code for application errors", func(t *testing.T) {
		t.Parallel()
		err := scraper.Errorf(scraper.EUNAVAILABLE, "HTTP 503")
		assert.Equal(t, scraper.EUNAVAILABLE, scraper.ErrorCode(err))
	})

	t.Run("unwraps wrapped application errors", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("page 3: %w", scraper.Errorf(scraper.ENOTFOUND, "no items"))
		assert.Equal(t, scraper.ENOTFOUND, scraper.ErrorCode(err))
	})

	t.Run("reports internal for plain errors", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, scraper.EINTERNAL, scraper.ErrorCode(errors.New("boom")))
	})

	t.Run("returns empty for nil", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, scraper.ErrorCode(nil))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("returns message for application errors", func(t *testing.T) {
		t.Parallel()
		err := scraper.Errorf(scraper.EINVALID, "bad page size %d", 50)
		assert.Equal(t, "bad page size 50", scraper.ErrorMessage(err))
	})

	t.Run("hides plain error details", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Internal error.", scraper.ErrorMessage(errors.New("secret")))
	})
}
