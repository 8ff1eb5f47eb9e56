package reconciler

import (
	"github.com/agentstation/shelfmap/pkg/errors"
)

type options struct {
	strategy  Strategy
	inclusion InclusionPolicy
}

func defaultOptions() *options {
	return &options{
		strategy:  NewOverlayAllStrategy(),
		inclusion: IncludeIdentifiedOrTitled,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithStrategy sets the overlay strategy.
func WithStrategy(strategy Strategy) Option {
	return func(o *options) error {
		if strategy == nil {
			return &errors.ValidationError{
				Field:   "strategy",
				Message: "cannot be nil",
			}
		}
		o.strategy = strategy
		return nil
	}
}

// WithInclusion sets the inclusion policy for primary records.
func WithInclusion(policy InclusionPolicy) Option {
	return func(o *options) error {
		parsed, err := ParseInclusionPolicy(string(policy))
		if err != nil {
			return err
		}
		o.inclusion = parsed
		return nil
	}
}
