package shelfmap

import (
	"sync"

	"github.com/agentstation/shelfmap/pkg/books"
	"github.com/agentstation/shelfmap/pkg/catalogs"
)

// Compile-time interface check to ensure proper implementation.
var _ Hooks = (*client)(nil)

// Hook function types for catalog events.
type (
	// CatalogLoadedHook is called after a new catalog is swapped in.
	CatalogLoadedHook func(prev, next *catalogs.Catalog)

	// LoadFailedHook is called when a load fails and the previous catalog is kept.
	LoadFailedHook func(err error)

	// BookAddedHook is called for a book present only in the new catalog.
	BookAddedHook func(book books.Book)

	// BookUpdatedHook is called for a book whose fields changed.
	BookUpdatedHook func(old, new books.Book)

	// BookRemovedHook is called for a book that is no longer in the catalog.
	BookRemovedHook func(book books.Book)
)

// Hooks provides event callback registration.
type Hooks interface {
	OnCatalogLoaded(fn CatalogLoadedHook)
	OnLoadFailed(fn LoadFailedHook)
	OnBookAdded(fn BookAddedHook)
	OnBookUpdated(fn BookUpdatedHook)
	OnBookRemoved(fn BookRemovedHook)
}

// OnCatalogLoaded implements Hooks.
func (c *client) OnCatalogLoaded(fn CatalogLoadedHook) { c.hooks.OnCatalogLoaded(fn) }

// OnLoadFailed implements Hooks.
func (c *client) OnLoadFailed(fn LoadFailedHook) { c.hooks.OnLoadFailed(fn) }

// OnBookAdded implements Hooks.
func (c *client) OnBookAdded(fn BookAddedHook) { c.hooks.OnBookAdded(fn) }

// OnBookUpdated implements Hooks.
func (c *client) OnBookUpdated(fn BookUpdatedHook) { c.hooks.OnBookUpdated(fn) }

// OnBookRemoved implements Hooks.
func (c *client) OnBookRemoved(fn BookRemovedHook) { c.hooks.OnBookRemoved(fn) }

// hooks manages event callbacks for catalog changes.
type hooks struct {
	mu              sync.RWMutex
	onCatalogLoaded []CatalogLoadedHook
	onLoadFailed    []LoadFailedHook
	onBookAdded     []BookAddedHook
	onBookUpdated   []BookUpdatedHook
	onBookRemoved   []BookRemovedHook
}

func newHooks() *hooks {
	return &hooks{}
}

func (h *hooks) OnCatalogLoaded(fn CatalogLoadedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onCatalogLoaded = append(h.onCatalogLoaded, fn)
}

func (h *hooks) OnLoadFailed(fn LoadFailedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onLoadFailed = append(h.onLoadFailed, fn)
}

func (h *hooks) OnBookAdded(fn BookAddedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onBookAdded = append(h.onBookAdded, fn)
}

func (h *hooks) OnBookUpdated(fn BookUpdatedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onBookUpdated = append(h.onBookUpdated, fn)
}

func (h *hooks) OnBookRemoved(fn BookRemovedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onBookRemoved = append(h.onBookRemoved, fn)
}

func (h *hooks) triggerLoadFailed(err error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onLoadFailed {
		fn(err)
	}
}

// triggerCatalogLoaded fires the load hooks, then compares the two catalogs
// by normalized identifier and fires the per-book hooks. Books without an
// identifier cannot be tracked across loads and are skipped.
func (h *hooks) triggerCatalogLoaded(prev, next *catalogs.Catalog) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, fn := range h.onCatalogLoaded {
		fn(prev, next)
	}

	if len(h.onBookAdded)+len(h.onBookUpdated)+len(h.onBookRemoved) == 0 {
		return
	}

	prevByKey := keyed(prev)
	seen := make(map[string]bool, next.Len())

	for _, b := range next.Books() {
		if b.Key == "" || seen[b.Key] {
			continue
		}
		seen[b.Key] = true
		old, existed := prevByKey[b.Key]
		switch {
		case !existed:
			for _, fn := range h.onBookAdded {
				fn(b)
			}
		case !old.Fields.Equal(b.Fields):
			for _, fn := range h.onBookUpdated {
				fn(old, b)
			}
		}
		delete(prevByKey, b.Key)
	}

	for _, b := range prev.Books() {
		if _, gone := prevByKey[b.Key]; !gone {
			continue
		}
		for _, fn := range h.onBookRemoved {
			fn(b)
		}
		delete(prevByKey, b.Key)
	}
}

func keyed(cat *catalogs.Catalog) map[string]books.Book {
	if cat == nil {
		return map[string]books.Book{}
	}
	out := make(map[string]books.Book, cat.Len())
	for _, b := range cat.Books() {
		if b.Key != "" {
			out[b.Key] = b
		}
	}
	return out
}
