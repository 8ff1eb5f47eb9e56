// Package pagination serves a view in fixed-size pages with a cursor. The
// pager only pulls; whatever decides that "more should be shown" (a scroll
// sentinel, an Enter key, an HTTP request) drives it through a Trigger or
// direct NextPage calls.
package pagination

import (
	"github.com/agentstation/shelfmap/pkg/constants"
)

// Pager walks a view page by page. It is not safe for concurrent use;
// callers that share a pager guard it themselves.
type Pager[T any] struct {
	view     []T
	cursor   int
	pageSize int
	rendered int
}

// New returns a pager over view. A non-positive size uses the default page size.
func New[T any](view []T, pageSize int) *Pager[T] {
	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}
	return &Pager[T]{view: view, pageSize: pageSize}
}

// Reset replaces the view, rewinds the cursor and forgets what was served.
func (p *Pager[T]) Reset(view []T) {
	p.view = view
	p.cursor = 0
	p.rendered = 0
}

// NextPage returns the page at the cursor and advances it. Past the end it
// returns an empty slice.
func (p *Pager[T]) NextPage() []T {
	page, _ := PageAt(p.view, p.cursor, p.pageSize)
	p.cursor++
	p.rendered += len(page)
	return page
}

// HasMore reports whether NextPage would return anything.
func (p *Pager[T]) HasMore() bool {
	return p.cursor*p.pageSize < len(p.view)
}

// Cursor returns the number of pages served since the last reset.
func (p *Pager[T]) Cursor() int { return p.cursor }

// PageSize returns the fixed page size.
func (p *Pager[T]) PageSize() int { return p.pageSize }

// Len returns the size of the current view.
func (p *Pager[T]) Len() int { return len(p.view) }

// Rendered returns how many items have been served since the last reset.
func (p *Pager[T]) Rendered() int { return p.rendered }

// View returns the current view.
func (p *Pager[T]) View() []T { return p.view }

// PageAt returns the zero-based page of view and whether later pages exist.
// Out-of-range pages are empty.
func PageAt[T any](view []T, page, size int) ([]T, bool) {
	if size <= 0 {
		size = constants.DefaultPageSize
	}
	if page < 0 {
		return []T{}, len(view) > 0
	}
	start := page * size
	if start >= len(view) {
		return []T{}, false
	}
	end := min(start+size, len(view))
	return view[start:end:end], end < len(view)
}

// Pages returns how many pages a view of n items spans.
func Pages(n, size int) int {
	if size <= 0 {
		size = constants.DefaultPageSize
	}
	return (n + size - 1) / size
}
