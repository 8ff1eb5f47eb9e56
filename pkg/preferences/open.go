package preferences

import (
	"context"
	"strings"

	"github.com/agentstation/shelfmap/pkg/errors"
)

// Open returns the store named by uri:
//
//	memory:                      in-process only
//	sqlite:///path/to/prefs.db   SQLite file
//	postgres://user@host/db      Postgres (postgresql:// also accepted)
//	file:///path/prefs.yaml      YAML file
//	/path/prefs.yaml             YAML file
func Open(ctx context.Context, uri string) (Store, error) {
	switch {
	case uri == "" || uri == "memory:" || uri == "memory":
		return NewMemory(), nil
	case strings.HasPrefix(uri, "sqlite://"):
		return OpenSQLite(ctx, strings.TrimPrefix(uri, "sqlite://"))
	case strings.HasPrefix(uri, "postgres://"), strings.HasPrefix(uri, "postgresql://"):
		return OpenPostgres(ctx, uri)
	case strings.HasPrefix(uri, "file://"):
		return NewFile(strings.TrimPrefix(uri, "file://")), nil
	case strings.Contains(uri, "://"):
		return nil, errors.NewValidationError("preferences", uri, "unsupported store scheme")
	}
	return NewFile(uri), nil
}
