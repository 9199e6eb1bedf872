package scraper

import (
	"encoding/json"
	"sort"
	"strings"
)

// URLField is the reserved field name carrying the record's source URL.
const URLField = "url"

// Record is the extracted data for a single catalog item. Field values are
// whitespace-trimmed strings; a field whose extraction chain found nothing
// holds the empty string. Records are immutable once constructed.
type Record struct {
	// URL uniquely identifies the item's detail page.
	URL string

	// Fields maps field names to extracted values. It never contains
	// the URLField key; the URL is carried separately.
	Fields map[string]string
}

// NewRecord returns a Record for the given source URL.
func NewRecord(url string) *Record {
	return &Record{URL: url, Fields: make(map[string]string)}
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "record source URL required")
	}
	return nil
}

// Set stores a field value, trimming surrounding whitespace. Casing and
// punctuation are preserved on purpose.
func (r *Record) Set(field, value string) {
	r.Fields[field] = strings.TrimSpace(value)
}

// Get returns the value of a field, or the source URL for URLField.
func (r *Record) Get(field string) string {
	if field == URLField {
		return r.URL
	}
	return r.Fields[field]
}

// FieldNames returns the record's field names sorted, with URLField included.
func (r *Record) FieldNames() []string {
	names := make([]string, 0, len(r.Fields)+1)
	names = append(names, URLField)
	for name := range r.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MarshalJSON encodes the record as a flat object with the source URL under
// the URLField key.
func (r *Record) MarshalJSON() ([]byte, error) {
	flat := make(map[string]string, len(r.Fields)+1)
	for name, value := range r.Fields {
		flat[name] = value
	}
	flat[URLField] = r.URL
	return json.Marshal(flat)
}

// UnmarshalJSON decodes a flat object, recovering the source URL from the
// URLField key.
func (r *Record) UnmarshalJSON(data []byte) error {
	flat := make(map[string]string)
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	r.URL = flat[URLField]
	delete(flat, URLField)
	r.Fields = flat
	return nil
}
