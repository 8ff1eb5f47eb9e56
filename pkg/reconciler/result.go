package reconciler

import (
	"time"

	"github.com/agentstation/shelfmap/pkg/books"
)

// Result is the outcome of reconciling the two datasets.
type Result struct {
	// Records is the unified set in primary order.
	Records []books.Record

	// Categories groups secondary identifiers by category label.
	Categories *Categories

	// Metadata describes the run.
	Metadata ResultMetadata
}

// ResultMetadata contains metadata about the reconciliation process.
type ResultMetadata struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Strategy  StrategyType
	Inclusion InclusionPolicy
	Stats     ResultStatistics
}

// ResultStatistics contains counts about the reconciliation.
type ResultStatistics struct {
	PrimaryRecords   int `json:"primary_records" yaml:"primary_records"`
	SecondaryRecords int `json:"secondary_records" yaml:"secondary_records"`
	IndexedKeys      int `json:"indexed_keys" yaml:"indexed_keys"`
	DuplicateKeys    int `json:"duplicate_keys" yaml:"duplicate_keys"`
	Excluded         int `json:"excluded" yaml:"excluded"`
	Matched          int `json:"matched" yaml:"matched"`
	Unmatched        int `json:"unmatched" yaml:"unmatched"`
	Unified          int `json:"unified" yaml:"unified"`
	Categories       int `json:"categories" yaml:"categories"`
}
