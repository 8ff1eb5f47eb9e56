package catalogs

import (
	"sync"

	"github.com/agentstation/shelfmap/pkg/books"
)

// DetailView tracks the single book shown in detail. Opening a book replaces
// whatever was open; closing is idempotent.
type DetailView struct {
	mu      sync.RWMutex
	current *books.Detail
}

// Open projects b and makes it the open detail.
func (d *DetailView) Open(b books.Book) books.Detail {
	detail := b.Detail()
	d.mu.Lock()
	d.current = &detail
	d.mu.Unlock()
	return detail
}

// Close dismisses the open detail, if any.
func (d *DetailView) Close() {
	d.mu.Lock()
	d.current = nil
	d.mu.Unlock()
}

// Current returns the open detail.
func (d *DetailView) Current() (books.Detail, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.current == nil {
		return books.Detail{}, false
	}
	return *d.current, true
}
