package fs

import (
	"strings"
	"time"
	"unicode"
)

// TimestampLayout is the timestamp appended to generated output names.
const TimestampLayout = "2006-01-02_15-04-05"

// SanitizeTerm turns a free-form search term into a filename-safe prefix:
// lowercased, runs of non-alphanumeric characters collapsed into a single
// underscore, leading and trailing underscores trimmed. Applying it twice
// yields the same result.
func SanitizeTerm(term string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(term) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

// OutputBase builds the base name (no extension) for a generated output
// file: the sanitized search term, or fallback when the term sanitizes to
// nothing, with a "_jp" suffix for the Japanese catalog and a timestamp.
func OutputBase(term, fallback string, japanese bool, now time.Time) string {
	prefix := SanitizeTerm(term)
	if prefix == "" {
		prefix = fallback
	}
	if japanese {
		prefix += "_jp"
	}
	return prefix + "_" + now.Format(TimestampLayout)
}
