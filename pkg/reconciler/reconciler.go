// Package reconciler joins the primary and secondary book datasets on a
// normalized identifier. It builds the secondary index, overlays matched
// secondary fields onto primary records, and derives the category grouping.
//
// Which primary rows survive is an InclusionPolicy. The default,
// IncludeIdentifiedOrTitled, keeps an untitled placeholder row such as
// "0000000000" because it carries an identifier. IncludeMatchedOrTitled
// drops that row unless the secondary dataset knows the identifier, which
// gives a catalog holding only titled or enriched books.
package reconciler

import (
	"context"
	"time"

	"github.com/agentstation/shelfmap/pkg/books"
	"github.com/agentstation/shelfmap/pkg/logging"
)

// Reconciler produces the unified record set from the two datasets.
type Reconciler interface {
	// Reconcile merges secondary into primary. The primary dataset decides
	// which books exist; the secondary only enriches and categorizes.
	Reconcile(ctx context.Context, primary, secondary []books.Record) (*Result, error)
}

type reconciler struct {
	merger    *Merger
	strategy  Strategy
	inclusion InclusionPolicy
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	o, err := defaultOptions().apply(opts...)
	if err != nil {
		return nil, err
	}
	return &reconciler{
		merger:    NewMerger(o.strategy, o.inclusion),
		strategy:  o.strategy,
		inclusion: o.inclusion,
	}, nil
}

// Reconcile implements Reconciler.
func (r *reconciler) Reconcile(ctx context.Context, primary, secondary []books.Record) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := logging.FromContext(ctx)
	start := time.Now()

	idx := BuildIndex(secondary)
	if idx.Duplicates() > 0 {
		logger.Debug().
			Int("duplicates", idx.Duplicates()).
			Msg("Secondary dataset has repeated identifiers, later rows win")
	}

	records, mstats := r.merger.Merge(primary, idx)
	categories := BuildCategories(secondary)

	end := time.Now()
	result := &Result{
		Records:    records,
		Categories: categories,
		Metadata: ResultMetadata{
			StartTime: start,
			EndTime:   end,
			Duration:  end.Sub(start),
			Strategy:  r.strategy.Type(),
			Inclusion: r.inclusion,
			Stats: ResultStatistics{
				PrimaryRecords:   len(primary),
				SecondaryRecords: len(secondary),
				IndexedKeys:      idx.Len(),
				DuplicateKeys:    idx.Duplicates(),
				Excluded:         mstats.Excluded,
				Matched:          mstats.Matched,
				Unmatched:        mstats.Unmatched,
				Unified:          len(records),
				Categories:       categories.Len(),
			},
		},
	}

	logger.Debug().
		Int("unified", len(records)).
		Int("matched", mstats.Matched).
		Int("excluded", mstats.Excluded).
		Int("categories", categories.Len()).
		Dur("duration", result.Metadata.Duration).
		Msg("Datasets reconciled")

	return result, nil
}
