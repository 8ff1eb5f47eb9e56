package shelfmap

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agentstation/shelfmap/internal/sources"
	"github.com/agentstation/shelfmap/pkg/books"
	"github.com/agentstation/shelfmap/pkg/catalogs"
	"github.com/agentstation/shelfmap/pkg/errors"
	"github.com/agentstation/shelfmap/pkg/logging"
)

// Compile-time interface check to ensure proper implementation.
var _ Loader = (*client)(nil)

// Loader fetches and reconciles the datasets.
type Loader interface {
	// Load fetches both datasets, reconciles them and swaps the result in.
	// On error the previous catalog stays in place. There is no retry.
	Load(ctx context.Context) (*catalogs.Catalog, error)
}

// fetched is the outcome of reading one dataset.
type fetched struct {
	records []books.Record
	info    catalogs.SourceInfo
	err     error
}

// Load implements Loader.
func (c *client) Load(ctx context.Context) (*catalogs.Catalog, error) {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	ctx = logging.WithOperation(ctx, "load")
	logger := logging.FromContext(ctx)
	start := time.Now()

	primary, secondary, err := c.fetchAll(ctx)
	if err != nil {
		return nil, c.failed(ctx, start, err)
	}

	if secondary.err != nil {
		logger.Warn().
			Err(secondary.err).
			Str("source", sources.Secondary).
			Msg("Secondary dataset unavailable, continuing with primary data only")
	}

	result, err := c.reconciler.Reconcile(ctx, primary.records, secondary.records)
	if err != nil {
		return nil, c.failed(ctx, start, errors.WrapResource("reconcile", "datasets", "", err))
	}

	cat := catalogs.New(result,
		catalogs.WithLoadedAt(time.Now()),
		catalogs.WithSources(primary.info, secondary.info),
	)
	c.setCatalog(cat)

	elapsed := time.Since(start)
	c.options.observer.ObserveLoad(result.Metadata.Stats, elapsed)
	logger.Info().
		Int("books", cat.Len()).
		Int("categories", cat.Categories().Len()).
		Int("matched", result.Metadata.Stats.Matched).
		Dur("duration", elapsed).
		Msg("Catalog loaded")
	return cat, nil
}

// fetchAll reads both datasets concurrently and waits for both. A secondary
// failure is reported in the returned fetched value unless the secondary is
// required, in which case it fails the load.
func (c *client) fetchAll(ctx context.Context) (primary, secondary fetched, err error) {
	srcOpts := c.options.sourceOptions()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		primary = c.fetch(gctx, sources.Primary, c.options.primaryURL, srcOpts)
		return primary.err
	})
	g.Go(func() error {
		if c.options.secondaryURL == "" {
			if c.options.secondaryRequired {
				secondary.err = errors.NewValidationError("secondary_url", "", "required but not configured")
				return secondary.err
			}
			secondary.info = catalogs.SourceInfo{Name: sources.Secondary}
			return nil
		}
		secondary = c.fetch(gctx, sources.Secondary, c.options.secondaryURL, srcOpts)
		if secondary.err != nil && c.options.secondaryRequired {
			return secondary.err
		}
		return nil
	})
	err = g.Wait()
	return primary, secondary, err
}

// fetch opens and parses one dataset.
func (c *client) fetch(ctx context.Context, name, uri string, opts []sources.Option) fetched {
	ctx = logging.WithSource(ctx, name)
	start := time.Now()
	out := fetched{info: catalogs.SourceInfo{Name: name, URI: uri}}

	src, err := sources.Open(ctx, name, uri, opts...)
	if err == nil {
		out.records, err = sources.Load(ctx, src)
	}
	if err != nil {
		if !errors.Is(err, errors.ErrSourceUnavailable) {
			err = errors.NewSourceError(name, uri, err)
		}
		out.err = err
		out.info.Error = err.Error()
	}
	out.info.Records = len(out.records)
	c.options.observer.ObserveSource(name, out.info.Records, time.Since(start), out.err)
	return out
}

// failed records a failed load and returns err.
func (c *client) failed(ctx context.Context, start time.Time, err error) error {
	elapsed := time.Since(start)
	logging.FromContext(ctx).Error().Err(err).Dur("duration", elapsed).Msg("Catalog load failed")
	c.options.observer.ObserveLoadFailure(elapsed, err)
	c.hooks.triggerLoadFailed(err)
	return err
}
