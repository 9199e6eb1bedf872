package scraper

import (
	"context"
	"regexp"
	"strings"
)

// LookupEntry is one row of a batch-lookup input file.
type LookupEntry struct {
	// Index is the zero-based row position in the source file.
	Index int

	// Name is the card name used as the search term.
	Name string

	// Number is the raw combined number value, e.g. "045/150" or
	// "123metal". Retained for diagnostic reporting when it differs
	// from the extracted Key.
	Number string

	// Key is the collection-number lookup key extracted from Number.
	Key string

	// Truncated reports that Key differs from the raw Number value.
	Truncated bool
}

// LookupFailure records a row that could not be parsed. Processing
// continues with the next row.
type LookupFailure struct {
	Index int
	Raw   []string
	Err   error
}

// LookupSource loads batch-lookup entries from tabular input.
type LookupSource interface {
	Load(ctx context.Context) ([]LookupEntry, []LookupFailure, error)
}

// leadingDigits matches the digit run at the start of a token.
var leadingDigits = regexp.MustCompile(`^(\d+)`)

// ExtractLookupKey derives the lookup key from a combined number value.
// The key is the leading digit run of the token before any "/" or space;
// a value with no leading digits is returned unchanged.
func ExtractLookupKey(number string) string {
	token := number
	if idx := strings.IndexAny(token, "/ "); idx != -1 {
		token = token[:idx]
	}
	if m := leadingDigits.FindString(token); m != "" {
		return m
	}
	return number
}

// NewLookupEntry builds an entry for a row, extracting the lookup key and
// flagging when it differs from the raw value.
func NewLookupEntry(index int, name, number string) LookupEntry {
	key := ExtractLookupKey(number)
	return LookupEntry{
		Index:     index,
		Name:      name,
		Number:    number,
		Key:       key,
		Truncated: key != number,
	}
}
