package books

import (
	"maps"
	"slices"
)

// Record is one parsed dataset row: header name to trimmed cell value.
// Records are treated as immutable once produced; helpers that change
// content return a new Record.
type Record map[string]string

// Get returns the value of field, or "" when the field is absent.
func (r Record) Get(field string) string {
	return r[field]
}

// First returns the first non-empty value among the given field spellings.
func (r Record) First(fields ...string) string {
	for _, f := range fields {
		if v := r[f]; v != "" {
			return v
		}
	}
	return ""
}

// Has reports whether field is present, even with an empty value.
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Identifier returns the raw identifier under either accepted spelling.
func (r Record) Identifier() string {
	return r.First(identifierFields...)
}

// Title returns the raw title.
func (r Record) Title() string {
	return r[FieldTitle]
}

// Category returns the raw category label under either accepted spelling.
func (r Record) Category() string {
	return r.First(categoryFields...)
}

// Clone returns a copy that shares no storage with r.
func (r Record) Clone() Record {
	if r == nil {
		return Record{}
	}
	return maps.Clone(r)
}

// Fields returns the record's field names in sorted order.
func (r Record) Fields() []string {
	return slices.Sorted(maps.Keys(r))
}

// Equal reports whether two records hold the same fields and values.
func (r Record) Equal(other Record) bool {
	return maps.Equal(r, other)
}
