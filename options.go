package shelfmap

import (
	"time"

	"github.com/agentstation/shelfmap/internal/sources"
	"github.com/agentstation/shelfmap/internal/transport"
	"github.com/agentstation/shelfmap/pkg/constants"
	"github.com/agentstation/shelfmap/pkg/errors"
	"github.com/agentstation/shelfmap/pkg/reconciler"
)

// S3Config holds connection settings for s3:// dataset locations.
type S3Config = sources.S3Config

// options holds all configuration for the client.
type options struct {
	primaryURL   string
	secondaryURL string

	secondaryRequired bool
	strategy          reconciler.Strategy
	inclusion         reconciler.InclusionPolicy
	pageSize          int

	httpTimeout time.Duration
	auth        transport.Authenticator
	s3          S3Config

	autoReloadEnabled  bool
	autoReloadInterval time.Duration

	observer Observer
}

// Option is a function that configures the client.
type Option func(*options) error

func defaults() *options {
	return &options{
		primaryURL:         constants.DefaultPrimaryURL,
		secondaryURL:       constants.DefaultSecondaryURL,
		strategy:           reconciler.NewOverlayAllStrategy(),
		inclusion:          reconciler.IncludeIdentifiedOrTitled,
		pageSize:           constants.DefaultPageSize,
		httpTimeout:        constants.DefaultHTTPTimeout,
		autoReloadInterval: constants.DefaultReloadInterval,
		observer:           nopObserver{},
	}
}

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// sourceOptions builds the options passed to sources.Open.
func (o *options) sourceOptions() []sources.Option {
	client := transport.New(
		transport.WithTimeout(o.httpTimeout),
		transport.WithAuth(o.auth),
	)
	return []sources.Option{
		sources.WithClient(client),
		sources.WithS3Config(o.s3),
	}
}

// WithPrimaryURL sets the location of the primary (bibliographic) dataset.
func WithPrimaryURL(uri string) Option {
	return func(o *options) error {
		if uri == "" {
			return errors.NewValidationError("primary_url", uri, "cannot be empty")
		}
		o.primaryURL = uri
		return nil
	}
}

// WithSecondaryURL sets the location of the secondary (enrichment) dataset.
// An empty location disables the secondary dataset.
func WithSecondaryURL(uri string) Option {
	return func(o *options) error {
		o.secondaryURL = uri
		return nil
	}
}

// WithSecondaryRequired makes a secondary failure fail the whole load
// instead of falling back to primary-only data.
func WithSecondaryRequired(required bool) Option {
	return func(o *options) error {
		o.secondaryRequired = required
		return nil
	}
}

// WithStrategy sets how matched secondary fields overlay primary ones.
func WithStrategy(name string) Option {
	return func(o *options) error {
		s, err := reconciler.ParseStrategy(name)
		if err != nil {
			return err
		}
		o.strategy = s
		return nil
	}
}

// WithInclusion sets which primary records make it into the catalog.
func WithInclusion(name string) Option {
	return func(o *options) error {
		p, err := reconciler.ParseInclusionPolicy(name)
		if err != nil {
			return err
		}
		o.inclusion = p
		return nil
	}
}

// WithPageSize sets the page size of new sessions.
func WithPageSize(size int) Option {
	return func(o *options) error {
		if size <= 0 || size > constants.MaxPageSize {
			return errors.NewValidationError("page_size", size, "out of range")
		}
		o.pageSize = size
		return nil
	}
}

// WithHTTPTimeout sets the per-request timeout for http(s) datasets.
func WithHTTPTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return errors.NewValidationError("http_timeout", d, "must be positive")
		}
		o.httpTimeout = d
		return nil
	}
}

// WithSourceAuth sends a credential with dataset downloads. An empty header
// means "Authorization: Bearer <token>".
func WithSourceAuth(header, token string) Option {
	return func(o *options) error {
		o.auth = transport.AuthFor(header, token)
		return nil
	}
}

// WithS3 configures access to s3:// dataset locations.
func WithS3(cfg S3Config) Option {
	return func(o *options) error {
		o.s3 = cfg
		return nil
	}
}

// WithAutoReload enables periodic reloads.
func WithAutoReload(enabled bool) Option {
	return func(o *options) error {
		o.autoReloadEnabled = enabled
		return nil
	}
}

// WithAutoReloadInterval sets how often the datasets are reloaded.
func WithAutoReloadInterval(interval time.Duration) Option {
	return func(o *options) error {
		o.autoReloadInterval = interval
		return nil
	}
}

// WithObserver receives load timings and counts, e.g. for metrics.
func WithObserver(obs Observer) Option {
	return func(o *options) error {
		if obs == nil {
			return errors.NewValidationError("observer", nil, "cannot be nil")
		}
		o.observer = obs
		return nil
	}
}
