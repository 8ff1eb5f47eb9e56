// Package application provides the application interface for shelfmap commands
// and the HTTP server.
//
// Commands accept this interface rather than the concrete App type so they
// can be tested against Mock.
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            cat, err := app.Catalog(cmd.Context())
//	            if err != nil {
//	                return err
//	            }
//	            // ... use cat
//	            return nil
//	        },
//	    }
//	}
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/shelfmap"
	"github.com/agentstation/shelfmap/internal/metrics"
	"github.com/agentstation/shelfmap/pkg/catalogs"
	"github.com/agentstation/shelfmap/pkg/preferences"
)

// Application is what commands and the server need from the running program.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Shelfmap returns the shared client, creating it on first use.
	Shelfmap() (shelfmap.Client, error)

	// Catalog returns the loaded catalog, loading the datasets on first use.
	Catalog(ctx context.Context) (*catalogs.Catalog, error)

	// Preferences returns the configured preference store.
	Preferences(ctx context.Context) (preferences.Store, error)

	// PrefersDark reports the fallback theme used when none is stored.
	PrefersDark() bool

	// PageSize is the configured number of books per page.
	PageSize() int

	// Metrics returns the shared metrics collector.
	Metrics() *metrics.Collector

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// NoColor reports whether colored output is disabled.
	NoColor() bool

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
