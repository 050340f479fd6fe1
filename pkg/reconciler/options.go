package reconciler

import (
	"github.com/agentstation/bankrot/pkg/errors"
	"github.com/agentstation/bankrot/pkg/provenance"
)

// options configures a reconciler.
type options struct {
	tracker  provenance.Tracker
	tracking bool
}

func defaultOptions() *options {
	return &options{
		tracking: true,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithProvenance enables or disables field-level tracking.
func WithProvenance(enabled bool) Option {
	return func(r *options) error {
		r.tracking = enabled
		return nil
	}
}

// WithTracker records provenance into an existing tracker, e.g. one shared by
// both entity kinds of a run.
func WithTracker(tracker provenance.Tracker) Option {
	return func(r *options) error {
		if tracker == nil {
			return &errors.ValidationError{
				Field:   "tracker",
				Message: "cannot be nil",
			}
		}
		r.tracker = tracker
		r.tracking = true
		return nil
	}
}
