package catalogs

import (
	"context"
	"sync"

	"github.com/agentstation/shelfmap/pkg/books"
	"github.com/agentstation/shelfmap/pkg/filter"
	"github.com/agentstation/shelfmap/pkg/pagination"
)

// PageSink receives pages for display. reset is true when the page starts a
// new view and anything previously shown must be cleared.
type PageSink func(page []books.Book, reset bool)

// Session is one user's browsing state over a catalog. The active view and
// its cursor change together under one lock, so a page from an old view can
// never follow a page from a new one.
type Session struct {
	mu      sync.Mutex
	catalog *Catalog
	query   filter.Query
	pager   *pagination.Pager[books.Book]
	detail  DetailView

	trigger *pagination.Trigger[books.Book]
	ctx     context.Context
	signals <-chan struct{}
	sink    PageSink
}

// NewSession starts a session showing the whole catalog. No page has been
// served yet; call NextPage or SetQuery.
func NewSession(cat *Catalog, pageSize int) *Session {
	if cat == nil {
		cat = Empty()
	}
	s := &Session{
		catalog: cat,
		pager:   pagination.New(cat.Books(), pageSize),
	}
	s.trigger = pagination.NewTrigger[books.Book](&s.mu)
	return s
}

// SetQuery replaces the active view with the books matching q, rewinds the
// cursor and returns the first page. An attached sink receives that page
// with reset set, and the trigger is re-attached to the rebuilt view.
func (s *Session) SetQuery(q filter.Query) []books.Book {
	attached := s.pause()

	s.mu.Lock()
	s.query = q
	first := s.resetLocked()
	s.mu.Unlock()

	if attached {
		s.resume()
	}
	return first
}

// Rebuild swaps in a newly loaded catalog and re-applies the current query.
func (s *Session) Rebuild(cat *Catalog) []books.Book {
	attached := s.pause()

	s.mu.Lock()
	if cat == nil {
		cat = Empty()
	}
	s.catalog = cat
	first := s.resetLocked()
	s.mu.Unlock()

	if attached {
		s.resume()
	}
	return first
}

func (s *Session) resetLocked() []books.Book {
	s.pager.Reset(s.catalog.Filter(s.query))
	first := s.pager.NextPage()
	if s.sink != nil {
		s.sink(first, true)
	}
	return first
}

// pause detaches the trigger without forgetting how it was attached.
func (s *Session) pause() bool {
	s.mu.Lock()
	attached := s.signals != nil
	s.mu.Unlock()
	if attached {
		s.trigger.Detach()
	}
	return attached
}

func (s *Session) resume() {
	s.mu.Lock()
	ctx, signals, sink := s.ctx, s.signals, s.sink
	s.mu.Unlock()
	if signals == nil {
		return
	}
	s.trigger.Attach(ctx, signals, s.pager, func(page []books.Book) {
		sink(page, false)
	})
}

// Attach makes every value received on signals pull the next page into sink,
// as long as more pages remain. sink runs with the session locked and must
// not call session methods.
func (s *Session) Attach(ctx context.Context, signals <-chan struct{}, sink PageSink) {
	s.trigger.Detach()
	s.mu.Lock()
	s.ctx, s.signals, s.sink = ctx, signals, sink
	s.mu.Unlock()
	s.resume()
}

// Detach stops pulling pages on signals.
func (s *Session) Detach() {
	s.trigger.Detach()
	s.mu.Lock()
	s.ctx, s.signals, s.sink = nil, nil, nil
	s.mu.Unlock()
}

// Attachments returns how many times the trigger has been attached.
func (s *Session) Attachments() int {
	return s.trigger.Attachments()
}

// NextPage returns the next page of the active view.
func (s *Session) NextPage() []books.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pager.NextPage()
}

// HasMore reports whether the active view has unserved pages.
func (s *Session) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pager.HasMore()
}

// View returns the active view.
func (s *Session) View() []books.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pager.View()
}

// Query returns the query behind the active view.
func (s *Session) Query() filter.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Rendered returns how many books have been served since the view was replaced.
func (s *Session) Rendered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pager.Rendered()
}

// Cursor returns how many pages have been served since the view was replaced.
func (s *Session) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pager.Cursor()
}

// PageSize returns the number of books per page.
func (s *Session) PageSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pager.PageSize()
}

// Catalog returns the catalog the session browses.
func (s *Session) Catalog() *Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog
}

// OpenDetail shows b in the detail view.
func (s *Session) OpenDetail(b books.Book) books.Detail {
	return s.detail.Open(b)
}

// OpenDetailByISBN looks up a book and shows it in the detail view.
func (s *Session) OpenDetailByISBN(isbn string) (books.Detail, error) {
	b, err := s.Catalog().Find(isbn)
	if err != nil {
		return books.Detail{}, err
	}
	return s.detail.Open(b), nil
}

// CloseDetail dismisses the detail view. Closing twice is fine.
func (s *Session) CloseDetail() {
	s.detail.Close()
}

// Detail returns the open detail, if any.
func (s *Session) Detail() (books.Detail, bool) {
	return s.detail.Current()
}
