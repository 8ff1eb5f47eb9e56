// Package books defines the catalog's record types: the raw dataset Record,
// the typed Book produced from it, and the Card and Detail display projections.
package books

import (
	"github.com/agentstation/shelfmap/pkg/normalize"
)

// Book is the typed view of a unified record. FromRecord is the only place
// that knows about alternate field spellings.
type Book struct {
	ISBN      string `json:"isbn" yaml:"isbn"`                               // Identifier as it appears in the data
	Key       string `json:"key" yaml:"key"`                                 // Normalized identifier used for joins
	Title     string `json:"title" yaml:"title"`                             // Title, may be empty
	Author    string `json:"author,omitempty" yaml:"author,omitempty"`       // Author
	Publisher string `json:"publisher,omitempty" yaml:"publisher,omitempty"` // Publisher
	CoverURL  string `json:"cover_url,omitempty" yaml:"cover_url,omitempty"` // Cover image URL
	Summary   string `json:"summary,omitempty" yaml:"summary,omitempty"`     // Back-cover summary
	Price     string `json:"price,omitempty" yaml:"price,omitempty"`         // Retail price, kept verbatim
	Language  string `json:"language,omitempty" yaml:"language,omitempty"`   // Language label
	Year      string `json:"year,omitempty" yaml:"year,omitempty"`           // Publication year, kept verbatim
	Category  string `json:"category,omitempty" yaml:"category,omitempty"`   // CP category code

	// Fields holds every column of the unified record, recognized or not.
	Fields Record `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// FromRecord maps a unified record to a Book. Missing fields become "".
func FromRecord(r Record) Book {
	isbn := r.Identifier()
	return Book{
		ISBN:      isbn,
		Key:       normalize.Key(isbn),
		Title:     r.Get(FieldTitle),
		Author:    r.Get(FieldAuthor),
		Publisher: r.Get(FieldPublisher),
		CoverURL:  r.Get(FieldCover),
		Summary:   r.Get(FieldSummary),
		Price:     r.Get(FieldPrice),
		Language:  r.Get(FieldLanguage),
		Year:      r.Get(FieldYear),
		Category:  r.Category(),
		Fields:    r,
	}
}

// FromRecords maps records in order.
func FromRecords(records []Record) []Book {
	out := make([]Book, len(records))
	for i, r := range records {
		out[i] = FromRecord(r)
	}
	return out
}

// SearchText is the lower-cased "title author" string free-text queries match against.
func (b Book) SearchText() string {
	return lowerJoin(b.Title, b.Author)
}
