package scraper

import (
	"fmt"
	"net/url"
	"strconv"
)

// Release-date orderings accepted by the catalog.
const (
	OrderOldToNew = "oldToNew"
	OrderNewToOld = "newToOld"
)

// Rarity sort modes accepted by the catalog.
const (
	SortRarityAsc  = "rarityAsc"
	SortRarityDesc = "rarityDesc"
)

// DefaultPerPage is the catalog's default page size.
const DefaultPerPage = 60

// SearchQuery holds the catalog search parameters for one crawl invocation.
// It is built once per crawl and never mutated mid-crawl; the page number is
// supplied per request via Values and omitted entirely for page 1, matching
// the site's URL convention.
type SearchQuery struct {
	// Search is the free-text card search term. Empty means all cards.
	Search string

	// PerPage is the page size. The catalog accepts 30, 60 or 120;
	// zero means DefaultPerPage.
	PerPage int

	// Order is the release-date ordering (OrderOldToNew or OrderNewToOld).
	// Empty leaves the catalog's default ordering.
	Order string

	// SortBy is the rarity sort mode (SortRarityAsc or SortRarityDesc).
	SortBy string

	// Japanese selects the Japanese catalog section.
	Japanese bool
}

// Validate returns an error if the query contains invalid fields.
func (q SearchQuery) Validate() error {
	switch q.PerPage {
	case 0, 30, 60, 120:
	default:
		return Errorf(EINVALID, "page size must be 30, 60 or 120, got %d", q.PerPage)
	}
	switch q.Order {
	case "", OrderOldToNew, OrderNewToOld:
	default:
		return Errorf(EINVALID, "unknown release date order %q", q.Order)
	}
	switch q.SortBy {
	case "", SortRarityAsc, SortRarityDesc:
	default:
		return Errorf(EINVALID, "unknown sort mode %q", q.SortBy)
	}
	return nil
}

// EffectivePerPage returns the page size with the default applied.
func (q SearchQuery) EffectivePerPage() int {
	if q.PerPage == 0 {
		return DefaultPerPage
	}
	return q.PerPage
}

// Values returns the URL query parameters for the given page number.
// The page parameter is omitted for page 1.
func (q SearchQuery) Values(page int) url.Values {
	v := url.Values{}
	v.Set("displayAs", "images")
	v.Set("cardsPerPage", strconv.Itoa(q.EffectivePerPage()))
	if q.Order != "" {
		v.Set("releaseDateOrder", q.Order)
	}
	if q.Search != "" {
		v.Set("cardSearch", q.Search)
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	return v
}

// Key returns a canonical identity string for the query, independent of the
// page number. Checkpoint stores use it to recognize a resumed crawl.
func (q SearchQuery) Key() string {
	return fmt.Sprintf("search=%s&perPage=%d&order=%s&sortBy=%s&jp=%t",
		q.Search, q.EffectivePerPage(), q.Order, q.SortBy, q.Japanese)
}
