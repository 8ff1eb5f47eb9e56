// Package app provides the application context and dependency management
// for the shelfmap CLI: configuration, logging, the shared catalog client
// and the preference store.
package app

import (
	"context"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/shelfmap"
	"github.com/agentstation/shelfmap/cmd/application"
	"github.com/agentstation/shelfmap/internal/metrics"
	"github.com/agentstation/shelfmap/pkg/catalogs"
	"github.com/agentstation/shelfmap/pkg/errors"
	"github.com/agentstation/shelfmap/pkg/preferences"
)

// Compile-time interface check to ensure proper implementation.
var _ application.Application = (*App)(nil)

// App is the shelfmap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config  *Config
	logger  *zerolog.Logger
	metrics *metrics.Collector

	// Lazily created, shared by every command
	mu     sync.RWMutex
	client shelfmap.Client
	prefs  preferences.Store

	// loadMu keeps concurrent first callers of Catalog from loading twice.
	loadMu sync.Mutex
}

// New creates an App with configuration loaded from the environment.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		metrics: metrics.New(),
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.config == nil {
		config, err := LoadConfig()
		if err != nil {
			return nil, errors.WrapResource("load", "config", "", err)
		}
		app.config = config
	}
	if app.logger == nil {
		logger := NewLogger(app.config)
		app.logger = &logger
	}
	return app, nil
}

// Version returns the version information.
func (a *App) Version() string { return a.version }

// Commit returns the git commit hash.
func (a *App) Commit() string { return a.commit }

// Date returns the build date.
func (a *App) Date() string { return a.date }

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string { return a.builtBy }

// Config returns the application configuration.
func (a *App) Config() *Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// Metrics returns the collector that observes every load.
func (a *App) Metrics() *metrics.Collector { return a.metrics }

// OutputFormat returns the --format value, empty for auto-detect.
func (a *App) OutputFormat() string { return a.config.Format }

// NoColor reports whether --no-color or NO_COLOR disabled color.
func (a *App) NoColor() bool { return a.config.NoColor || os.Getenv("NO_COLOR") != "" }

// PageSize returns the configured page size.
func (a *App) PageSize() int { return a.config.PageSize }

// PrefersDark reports the configured system theme preference.
func (a *App) PrefersDark() bool { return a.config.PrefersDark }

// Shelfmap returns the shared client, creating it on first use.
func (a *App) Shelfmap() (shelfmap.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.client != nil {
		return a.client, nil
	}

	c, err := shelfmap.New(a.clientOptions()...)
	if err != nil {
		return nil, errors.WrapResource("create", "shelfmap", "", err)
	}
	a.client = c
	return c, nil
}

// Catalog returns the loaded catalog, loading the datasets on first use.
func (a *App) Catalog(ctx context.Context) (*catalogs.Catalog, error) {
	c, err := a.Shelfmap()
	if err != nil {
		return nil, err
	}
	if cat := c.Catalog(); cat.Loaded() {
		return cat, nil
	}

	a.loadMu.Lock()
	defer a.loadMu.Unlock()
	if cat := c.Catalog(); cat.Loaded() {
		return cat, nil
	}
	return c.Load(ctx)
}

// Preferences returns the configured preference store, opening it on first use.
func (a *App) Preferences(ctx context.Context) (preferences.Store, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.prefs != nil {
		return a.prefs, nil
	}
	store, err := preferences.Open(ctx, a.config.Preferences)
	if err != nil {
		return nil, errors.WrapResource("open", "preferences", a.config.Preferences, err)
	}
	a.prefs = store
	return store, nil
}

// Shutdown stops background reloads and closes the preference store.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	c, store := a.client, a.prefs
	a.prefs = nil
	a.mu.Unlock()

	var errs []error
	if c != nil {
		if err := c.AutoReloadOff(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to stop auto-reload during shutdown")
			errs = append(errs, err)
		}
	}
	if store != nil {
		if err := store.Close(); err != nil {
			errs = append(errs, errors.WrapResource("close", "preferences", a.config.Preferences, err))
		}
	}
	return errors.Join(errs...)
}

// clientOptions builds client options from the configuration.
func (a *App) clientOptions() []shelfmap.Option {
	cfg := a.config
	opts := []shelfmap.Option{
		shelfmap.WithPrimaryURL(cfg.PrimaryURL),
		shelfmap.WithSecondaryURL(cfg.SecondaryURL),
		shelfmap.WithSecondaryRequired(cfg.SecondaryRequired),
		shelfmap.WithInclusion(cfg.Inclusion),
		shelfmap.WithStrategy(cfg.Overlay),
		shelfmap.WithPageSize(cfg.PageSize),
		shelfmap.WithObserver(a.metrics),
	}
	if cfg.HTTPTimeout > 0 {
		opts = append(opts, shelfmap.WithHTTPTimeout(cfg.HTTPTimeout))
	}
	if cfg.SourceToken != "" {
		opts = append(opts, shelfmap.WithSourceAuth(cfg.SourceAuthHeader, cfg.SourceToken))
	}
	if cfg.S3Endpoint != "" || cfg.S3Region != "" || cfg.S3PathStyle {
		opts = append(opts, shelfmap.WithS3(shelfmap.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			PathStyle: cfg.S3PathStyle,
		}))
	}
	if cfg.AutoReloadInterval > 0 {
		opts = append(opts, shelfmap.WithAutoReloadInterval(cfg.AutoReloadInterval))
	}
	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets the configuration instead of loading it.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if err := config.Validate(); err != nil {
			return err
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithShelfmap sets the client, for tests.
func WithShelfmap(c shelfmap.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}

// WithPreferences sets the preference store, for tests.
func WithPreferences(store preferences.Store) Option {
	return func(a *App) error {
		a.prefs = store
		return nil
	}
}
