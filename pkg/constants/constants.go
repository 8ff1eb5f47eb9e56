// Package constants provides shared constants used throughout shelfmap:
// timeouts, paging limits, file permissions and the default dataset locations.
package constants

import "time"

// Timeout constants
const (
	// DefaultHTTPTimeout bounds a single dataset download
	DefaultHTTPTimeout = 30 * time.Second

	// LoadTimeout bounds a full load of both datasets
	LoadTimeout = 2 * time.Minute

	// ShutdownTimeout is the grace period given to the HTTP server on shutdown
	ShutdownTimeout = 30 * time.Second

	// DefaultCacheTTL is how long API responses stay cached between reloads
	DefaultCacheTTL = 5 * time.Minute

	// DefaultReloadInterval is the auto-reload period when none is configured
	DefaultReloadInterval = 15 * time.Minute
)

// File permission constants
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Paging constants
const (
	// DefaultPageSize is the number of books rendered per incremental page
	DefaultPageSize = 24

	// MaxPageSize caps page sizes requested through the API
	MaxPageSize = 500
)

// Dataset locations. Both are published spreadsheet tabs exported as CSV.
const (
	// DefaultPrimaryURL is the main book list, one row per catalog item
	DefaultPrimaryURL = "https://docs.google.com/spreadsheets/d/e/2PACX-1vQzTLQAi1kX_H_ZfonV0s6LHuaG7WoCNuudNSuDtR8Sqym96ItIb0NKScuCAccxlSWqSQh1LH7dUeg0/pub?gid=1407754531&single=true&output=csv"

	// DefaultSecondaryURL is the auxiliary sheet carrying overrides and CP category codes
	DefaultSecondaryURL = "https://docs.google.com/spreadsheets/d/e/2PACX-1vQzTLQAi1kX_H_ZfonV0s6LHuaG7WoCNuudNSuDtR8Sqym96ItIb0NKScuCAccxlSWqSQh1LH7dUeg0/pub?gid=111084286&single=true&output=csv"
)
