// Package catalogs holds the loaded book catalog and the browsing sessions
// built on top of it.
//
// A Catalog is immutable once built: the unified books, the category
// grouping, the facet index and the filter option lists never change. A new
// load produces a new Catalog. A Session owns the mutable part of browsing:
// the active view, its page cursor and the open detail.
//
// Example usage:
//
//	cat := catalogs.New(result)
//	s := catalogs.NewSession(cat, 24)
//	first := s.SetQuery(filter.Query{Text: "quijote"})
//	for s.HasMore() {
//	    more := s.NextPage()
//	    ...
//	}
package catalogs

import (
	"time"

	"github.com/agentstation/shelfmap/pkg/books"
	"github.com/agentstation/shelfmap/pkg/errors"
	"github.com/agentstation/shelfmap/pkg/filter"
	"github.com/agentstation/shelfmap/pkg/normalize"
	"github.com/agentstation/shelfmap/pkg/reconciler"
)

// SourceInfo describes one dataset that went into a catalog.
type SourceInfo struct {
	Name    string `json:"name" yaml:"name"`
	URI     string `json:"uri" yaml:"uri"`
	Records int    `json:"records" yaml:"records"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Catalog is an immutable snapshot of the unified book set.
type Catalog struct {
	records    []books.Record
	books      []books.Book
	byKey      map[string]int
	categories *reconciler.Categories
	index      *filter.Index
	languages  []string
	years      []string
	stats      reconciler.ResultStatistics
	loadedAt   time.Time
	sources    []SourceInfo
}

// New builds a catalog from a reconciliation result. A nil result gives an empty catalog.
func New(result *reconciler.Result, opts ...Option) *Catalog {
	o := catalogDefaults().apply(opts...)
	if result == nil {
		result = &reconciler.Result{Categories: reconciler.BuildCategories(nil)}
	}

	bs := books.FromRecords(result.Records)
	byKey := make(map[string]int, len(bs))
	for i, b := range bs {
		if b.Key == "" {
			continue
		}
		if _, ok := byKey[b.Key]; !ok {
			byKey[b.Key] = i
		}
	}

	categories := result.Categories
	if categories == nil {
		categories = reconciler.BuildCategories(nil)
	}

	return &Catalog{
		records:    result.Records,
		books:      bs,
		byKey:      byKey,
		categories: categories,
		index:      filter.NewIndex(bs),
		languages:  filter.Languages(bs),
		years:      filter.Years(bs),
		stats:      result.Metadata.Stats,
		loadedAt:   o.loadedAt,
		sources:    o.sources,
	}
}

// Empty returns a catalog with no books.
func Empty() *Catalog {
	return New(nil)
}

// Books returns the unified books in primary dataset order.
func (c *Catalog) Books() []books.Book {
	return c.books
}

// Records returns the unified raw records in primary dataset order.
func (c *Catalog) Records() []books.Record {
	return c.records
}

// Len returns the number of books. A nil catalog is empty.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.books)
}

// Find returns the first book whose identifier normalizes like isbn.
func (c *Catalog) Find(isbn string) (books.Book, error) {
	key := normalize.Key(isbn)
	if i, ok := c.byKey[key]; ok && key != "" {
		return c.books[i], nil
	}
	return books.Book{}, errors.NewNotFoundError("book", isbn)
}

// Filter returns the books matching q in catalog order.
func (c *Catalog) Filter(q filter.Query) []books.Book {
	return c.index.Apply(q)
}

// Count returns the number of books matching q.
func (c *Catalog) Count(q filter.Query) int {
	return c.index.Count(q)
}

// Categories returns the category grouping built from the secondary dataset.
func (c *Catalog) Categories() *reconciler.Categories {
	return c.categories
}

// Languages returns the language filter options.
func (c *Catalog) Languages() []string {
	return c.languages
}

// Years returns the year filter options, newest first.
func (c *Catalog) Years() []string {
	return c.years
}

// Stats returns the reconciliation counters.
func (c *Catalog) Stats() reconciler.ResultStatistics {
	return c.stats
}

// LoadedAt returns when the datasets were fetched, or the zero time for a
// catalog that never came from a load.
func (c *Catalog) LoadedAt() time.Time {
	return c.loadedAt
}

// Loaded reports whether the catalog came from a load.
func (c *Catalog) Loaded() bool {
	return c != nil && !c.loadedAt.IsZero()
}

// Sources returns the datasets that went into the catalog.
func (c *Catalog) Sources() []SourceInfo {
	return c.sources
}
