package reconciler

import (
	"strings"

	"github.com/agentstation/shelfmap/pkg/books"
	"github.com/agentstation/shelfmap/pkg/errors"
	"github.com/agentstation/shelfmap/pkg/normalize"
)

// InclusionPolicy decides which primary records enter the unified set.
// It is evaluated on the primary record before any overlay.
type InclusionPolicy string

const (
	// IncludeIdentifiedOrTitled keeps records with a non-empty identifier
	// under either spelling, or a non-empty title. This is the default.
	IncludeIdentifiedOrTitled InclusionPolicy = "identified-or-titled"

	// IncludeMatchedOrTitled keeps records whose identifier has a match in
	// the secondary index, or that have a non-empty title. Untitled rows
	// missing from the secondary dataset are excluded.
	IncludeMatchedOrTitled InclusionPolicy = "matched-or-titled"
)

// Includes reports whether rec passes the policy.
func (p InclusionPolicy) Includes(rec books.Record, idx *Index) bool {
	if rec.Title() != "" {
		return true
	}
	switch p {
	case IncludeMatchedOrTitled:
		_, ok := idx.Lookup(normalize.Key(rec.Identifier()))
		return ok
	default:
		return rec.Identifier() != ""
	}
}

// ParseInclusionPolicy returns the policy for a configured name. Empty means identified-or-titled.
func ParseInclusionPolicy(name string) (InclusionPolicy, error) {
	switch p := InclusionPolicy(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return IncludeIdentifiedOrTitled, nil
	case IncludeIdentifiedOrTitled, IncludeMatchedOrTitled:
		return p, nil
	}
	return "", errors.NewValidationError("inclusion", name, "must be identified-or-titled or matched-or-titled")
}
