// Package sources fetches the raw dataset exports and parses them into records.
// A source is addressed by URI: http(s) URLs, s3://bucket/key objects, or
// local paths (file:// or bare).
package sources

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/agentstation/shelfmap/internal/transport"
	"github.com/agentstation/shelfmap/pkg/books"
	"github.com/agentstation/shelfmap/pkg/errors"
	"github.com/agentstation/shelfmap/pkg/logging"
)

// Dataset names.
const (
	Primary   = "primary"
	Secondary = "secondary"
)

// Source yields the raw bytes of one dataset.
type Source interface {
	// Name identifies the dataset, e.g. "primary".
	Name() string

	// URI is where the dataset lives.
	URI() string

	// Fetch opens the dataset. The caller closes the reader.
	Fetch(ctx context.Context) (io.ReadCloser, error)
}

type openOptions struct {
	client *transport.Client
	s3     S3Config
}

// Option configures Open.
type Option func(*openOptions)

// WithClient sets the HTTP client used for http(s) sources.
func WithClient(c *transport.Client) Option {
	return func(o *openOptions) {
		o.client = c
	}
}

// WithS3Config sets connection settings for s3:// sources.
func WithS3Config(cfg S3Config) Option {
	return func(o *openOptions) {
		o.s3 = cfg
	}
}

// Open returns the source for uri.
func Open(ctx context.Context, name, uri string, opts ...Option) (Source, error) {
	o := &openOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if uri == "" {
		return nil, errors.NewValidationError(name+"_url", uri, "dataset location is required")
	}

	switch {
	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"):
		client := o.client
		if client == nil {
			client = transport.New()
		}
		return NewHTTP(name, uri, client), nil
	case strings.HasPrefix(uri, "s3://"):
		u, err := url.Parse(uri)
		if err != nil {
			return nil, errors.NewValidationError(name+"_url", uri, err.Error())
		}
		return NewS3(ctx, name, u.Host, strings.TrimPrefix(u.Path, "/"), o.s3)
	case strings.HasPrefix(uri, "file://"):
		return NewFile(name, strings.TrimPrefix(uri, "file://")), nil
	case strings.Contains(uri, "://"):
		return nil, errors.NewValidationError(name+"_url", uri, "unsupported scheme")
	}
	return NewFile(name, uri), nil
}

// Load fetches and parses a source. Failures come back as *errors.SourceError.
func Load(ctx context.Context, src Source) ([]books.Record, error) {
	logger := logging.FromContext(ctx).With().Str("source", src.Name()).Logger()

	rc, err := src.Fetch(ctx)
	if err != nil {
		return nil, errors.NewSourceError(src.Name(), src.URI(), err)
	}
	defer func() { _ = rc.Close() }()

	records, err := ParseCSV(rc)
	if err != nil {
		return nil, errors.NewSourceError(src.Name(), src.URI(), err)
	}

	logger.Debug().Int("records", len(records)).Str("uri", src.URI()).Msg("Dataset parsed")
	return records, nil
}
