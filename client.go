// Package shelfmap provides the main entry point for the shelfmap book catalog.
// It loads the primary and secondary dataset exports, reconciles them into a
// unified catalog and hands out browsing sessions over the loaded snapshot.
//
// The client wraps the catalog engine with:
//   - Concurrent fetching of both datasets
//   - Thread-safe catalog swaps, readers keep an immutable snapshot
//   - Event hooks for loads, failures and per-book changes
//   - Optional periodic reloads
//
// Example usage:
//
//	sm, err := shelfmap.New(
//	    shelfmap.WithPrimaryURL(primaryCSV),
//	    shelfmap.WithSecondaryURL(secondaryCSV),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sm.AutoReloadOff()
//
//	if _, err := sm.Load(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	s := sm.NewSession()
//	for _, b := range s.SetQuery(filter.Query{Text: "borges"}) {
//	    fmt.Println(b.Title)
//	}
package shelfmap

import (
	"context"
	"sync"
	"time"

	"github.com/agentstation/shelfmap/pkg/catalogs"
	"github.com/agentstation/shelfmap/pkg/errors"
	"github.com/agentstation/shelfmap/pkg/reconciler"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Catalog provides access to the loaded catalog snapshot.
type Catalog interface {
	// Catalog returns the current snapshot. It is empty until the first
	// successful load.
	Catalog() *catalogs.Catalog

	// NewSession starts a browsing session on the current snapshot.
	NewSession() *catalogs.Session
}

// Client manages the catalog lifecycle.
type Client interface {
	// Catalog provides snapshot access
	Catalog

	// Loader fetches and reconciles the datasets
	Loader

	// AutoReloader controls periodic reloads
	AutoReloader

	// Hooks provides access to event callback registration
	Hooks
}

// client is the internal implementation of the Client interface.
type client struct {
	options    *options
	reconciler reconciler.Reconciler

	mu      sync.RWMutex
	catalog *catalogs.Catalog

	// loadMu serializes loads so two reloads never interleave their swaps.
	loadMu sync.Mutex

	// auto reload state
	reloadMu     sync.Mutex
	reloadTicker *time.Ticker
	reloadCancel context.CancelFunc
	reloadDone   chan struct{}

	hooks *hooks
}

// New creates a new Client. It does not fetch anything; call Load.
func New(opts ...Option) (Client, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}

	rec, err := reconciler.New(
		reconciler.WithStrategy(o.strategy),
		reconciler.WithInclusion(o.inclusion),
	)
	if err != nil {
		return nil, errors.WrapResource("create", "reconciler", "", err)
	}

	c := &client{
		options:    o,
		reconciler: rec,
		catalog:    catalogs.Empty(),
		hooks:      newHooks(),
	}

	if o.autoReloadEnabled {
		if err := c.AutoReloadOn(); err != nil {
			return nil, errors.WrapResource("start", "auto-reload", "", err)
		}
	}
	return c, nil
}

// Catalog returns the current snapshot.
func (c *client) Catalog() *catalogs.Catalog {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.catalog
}

// NewSession starts a browsing session on the current snapshot.
func (c *client) NewSession() *catalogs.Session {
	return catalogs.NewSession(c.Catalog(), c.options.pageSize)
}

// setCatalog swaps in a new snapshot and fires change hooks.
func (c *client) setCatalog(next *catalogs.Catalog) {
	c.mu.Lock()
	prev := c.catalog
	c.catalog = next
	c.mu.Unlock()

	c.hooks.triggerCatalogLoaded(prev, next)
}
