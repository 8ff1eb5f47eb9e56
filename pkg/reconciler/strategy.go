package reconciler

import (
	"strings"

	"github.com/agentstation/shelfmap/pkg/books"
	"github.com/agentstation/shelfmap/pkg/errors"
)

// StrategyType names an overlay strategy.
type StrategyType string

// String returns the string representation of a strategy type.
func (s StrategyType) String() string {
	return string(s)
}

// Name returns the strategy type as title-cased words.
func (s StrategyType) Name() string {
	words := strings.Split(s.String(), "-")
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

const (
	// StrategyTypeOverlayAll copies every field present in the secondary
	// record over the primary record, empty values included.
	StrategyTypeOverlayAll StrategyType = "overlay-all"
	// StrategyTypeOverlayNonEmpty copies only non-empty secondary values,
	// plus fields the primary record does not have at all.
	StrategyTypeOverlayNonEmpty StrategyType = "overlay-non-empty"
)

// Strategy decides how a matched secondary record is laid over a primary one.
type Strategy interface {
	// Type returns the strategy type
	Type() StrategyType

	// Description returns a human-readable description
	Description() string

	// Overlay returns the unified record. Neither input is modified.
	Overlay(primary, secondary books.Record) books.Record
}

type overlayAll struct{}

// NewOverlayAllStrategy returns the default strategy: secondary wins on every present field.
func NewOverlayAllStrategy() Strategy {
	return overlayAll{}
}

func (overlayAll) Type() StrategyType { return StrategyTypeOverlayAll }

func (overlayAll) Description() string {
	return "Secondary fields override primary fields, including empty values"
}

func (overlayAll) Overlay(primary, secondary books.Record) books.Record {
	out := make(books.Record, len(primary)+len(secondary))
	for k, v := range primary {
		out[k] = v
	}
	for k, v := range secondary {
		out[k] = v
	}
	return out
}

type overlayNonEmpty struct{}

// NewOverlayNonEmptyStrategy returns a strategy where empty secondary cells never clobber data.
func NewOverlayNonEmptyStrategy() Strategy {
	return overlayNonEmpty{}
}

func (overlayNonEmpty) Type() StrategyType { return StrategyTypeOverlayNonEmpty }

func (overlayNonEmpty) Description() string {
	return "Non-empty secondary fields override primary fields"
}

func (overlayNonEmpty) Overlay(primary, secondary books.Record) books.Record {
	out := make(books.Record, len(primary)+len(secondary))
	for k, v := range primary {
		out[k] = v
	}
	for k, v := range secondary {
		if _, ok := out[k]; ok && v == "" {
			continue
		}
		out[k] = v
	}
	return out
}

// ParseStrategy returns the strategy for a configured name. Empty means overlay-all.
func ParseStrategy(name string) (Strategy, error) {
	switch StrategyType(strings.ToLower(strings.TrimSpace(name))) {
	case "", StrategyTypeOverlayAll:
		return NewOverlayAllStrategy(), nil
	case StrategyTypeOverlayNonEmpty:
		return NewOverlayNonEmptyStrategy(), nil
	}
	return nil, errors.NewValidationError("overlay", name, "must be overlay-all or overlay-non-empty")
}
