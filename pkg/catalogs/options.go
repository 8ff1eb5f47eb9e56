package catalogs

import "time"

type catalogOptions struct {
	loadedAt time.Time
	sources  []SourceInfo
}

func catalogDefaults() *catalogOptions {
	return &catalogOptions{}
}

func (c *catalogOptions) apply(opts ...Option) *catalogOptions {
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures a catalog.
type Option func(*catalogOptions)

// WithLoadedAt records when the datasets were fetched. A catalog built
// without it reports Loaded() == false.
func WithLoadedAt(t time.Time) Option {
	return func(c *catalogOptions) {
		c.loadedAt = t
	}
}

// WithSources records which datasets were used.
func WithSources(sources ...SourceInfo) Option {
	return func(c *catalogOptions) {
		c.sources = append(c.sources, sources...)
	}
}
