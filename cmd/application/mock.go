package application

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/shelfmap"
	"github.com/agentstation/shelfmap/internal/metrics"
	"github.com/agentstation/shelfmap/pkg/catalogs"
	"github.com/agentstation/shelfmap/pkg/constants"
	"github.com/agentstation/shelfmap/pkg/logging"
	"github.com/agentstation/shelfmap/pkg/preferences"
)

// Compile-time interface check to ensure proper implementation.
var _ Application = (*Mock)(nil)

// Mock is an Application for tests. A nil function field falls back to a
// zero value: an empty catalog, an in-memory preference store, a no-op logger.
//
//	mock := &application.Mock{
//	    CatalogFunc: func(context.Context) (*catalogs.Catalog, error) {
//	        return testCatalog, nil
//	    },
//	}
//	cmd := list.NewCommand(mock)
type Mock struct {
	ShelfmapFunc     func() (shelfmap.Client, error)
	CatalogFunc      func(ctx context.Context) (*catalogs.Catalog, error)
	PreferencesFunc  func(ctx context.Context) (preferences.Store, error)
	PrefersDarkValue bool
	PageSizeValue    int
	MetricsValue     *metrics.Collector
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	NoColorValue     bool

	mu    sync.Mutex
	prefs preferences.Store
}

// Shelfmap returns a client using the mock function or an unloaded default client.
func (m *Mock) Shelfmap() (shelfmap.Client, error) {
	if m.ShelfmapFunc != nil {
		return m.ShelfmapFunc()
	}
	return shelfmap.New()
}

// Catalog returns a catalog using the mock function or an empty catalog.
func (m *Mock) Catalog(ctx context.Context) (*catalogs.Catalog, error) {
	if m.CatalogFunc != nil {
		return m.CatalogFunc(ctx)
	}
	return catalogs.Empty(), nil
}

// Preferences returns a store using the mock function or a shared in-memory store.
func (m *Mock) Preferences(ctx context.Context) (preferences.Store, error) {
	if m.PreferencesFunc != nil {
		return m.PreferencesFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.prefs == nil {
		m.prefs = preferences.NewMemory()
	}
	return m.prefs, nil
}

// PrefersDark returns PrefersDarkValue.
func (m *Mock) PrefersDark() bool { return m.PrefersDarkValue }

// PageSize returns PageSizeValue or the default page size.
func (m *Mock) PageSize() int {
	if m.PageSizeValue > 0 {
		return m.PageSizeValue
	}
	return constants.DefaultPageSize
}

// Metrics returns MetricsValue, creating a collector if unset.
func (m *Mock) Metrics() *metrics.Collector {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.MetricsValue == nil {
		m.MetricsValue = metrics.New()
	}
	return m.MetricsValue
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	return logging.NewNopLogger()
}

// OutputFormat returns the format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// NoColor returns NoColorValue.
func (m *Mock) NoColor() bool { return m.NoColorValue }

// Version returns a fixed test version.
func (m *Mock) Version() string { return "test" }

// Commit returns a fixed test commit.
func (m *Mock) Commit() string { return "none" }

// Date returns a fixed test date.
func (m *Mock) Date() string { return "unknown" }

// BuiltBy returns a fixed test builder.
func (m *Mock) BuiltBy() string { return "test" }
