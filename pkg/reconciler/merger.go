package reconciler

import (
	"github.com/agentstation/shelfmap/pkg/books"
	"github.com/agentstation/shelfmap/pkg/normalize"
)

// Merger overlays indexed secondary records onto primary records.
type Merger struct {
	strategy  Strategy
	inclusion InclusionPolicy
}

// MergeStats counts what happened to primary records during a merge.
type MergeStats struct {
	Excluded  int
	Matched   int
	Unmatched int
}

// NewMerger creates a merger. A nil strategy means overlay-all and an empty
// policy means identified-or-titled.
func NewMerger(strategy Strategy, inclusion InclusionPolicy) *Merger {
	if strategy == nil {
		strategy = NewOverlayAllStrategy()
	}
	if inclusion == "" {
		inclusion = IncludeIdentifiedOrTitled
	}
	return &Merger{strategy: strategy, inclusion: inclusion}
}

// Merge returns one unified record per included primary record, in primary
// order. Unmatched records are returned as-is.
func (m *Merger) Merge(primary []books.Record, idx *Index) ([]books.Record, MergeStats) {
	var stats MergeStats
	out := make([]books.Record, 0, len(primary))
	for _, rec := range primary {
		if !m.inclusion.Includes(rec, idx) {
			stats.Excluded++
			continue
		}
		if sec, ok := idx.Lookup(normalize.Key(rec.Identifier())); ok {
			out = append(out, m.strategy.Overlay(rec, sec))
			stats.Matched++
			continue
		}
		out = append(out, rec)
		stats.Unmatched++
	}
	return out, stats
}

// Merge runs the default merger: overlay-all with the identified-or-titled policy.
func Merge(primary []books.Record, idx *Index) []books.Record {
	out, _ := NewMerger(nil, "").Merge(primary, idx)
	return out
}
