// Package filter evaluates catalog queries: a free-text match over title and
// author combined with exact-match language and year filters. Results keep
// the input order and never depend on pagination state.
package filter

import (
	"strings"

	"github.com/agentstation/shelfmap/pkg/books"
)

// Query holds the user's current search inputs. Zero values match everything.
type Query struct {
	Text     string `json:"q,omitempty" yaml:"q,omitempty"`
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
	Year     string `json:"year,omitempty" yaml:"year,omitempty"`
}

// IsZero reports whether the query matches every book.
func (q Query) IsZero() bool {
	return q == Query{}
}

// Matches reports whether b satisfies every part of the query.
func (q Query) Matches(b books.Book) bool {
	return q.matchesText(b) && q.matchesFacets(b)
}

func (q Query) matchesText(b books.Book) bool {
	if q.Text == "" {
		return true
	}
	return strings.Contains(b.SearchText(), strings.ToLower(q.Text))
}

func (q Query) matchesFacets(b books.Book) bool {
	if q.Language != "" && b.Language != q.Language {
		return false
	}
	if q.Year != "" && b.Year != q.Year {
		return false
	}
	return true
}

// Apply returns the books matching q in input order. The input is not modified.
func Apply(bs []books.Book, q Query) []books.Book {
	out := make([]books.Book, 0, len(bs))
	for _, b := range bs {
		if q.Matches(b) {
			out = append(out, b)
		}
	}
	return out
}
