package harvest

import (
	"github.com/agentstation/bankrot/pkg/constants"
	"github.com/agentstation/bankrot/pkg/errors"
	"github.com/agentstation/bankrot/pkg/records"
)

// Options controls paging and targets of a harvest run.
type Options struct {
	LegalTarget  int            // Records to emit for companies
	PersonTarget int            // Records to emit for persons
	PageSize     int            // List items requested per page
	Kinds        []records.Kind // Kinds to harvest, in order
}

// Defaults returns the default harvest options.
func Defaults() *Options {
	return &Options{
		LegalTarget:  constants.DefaultTarget,
		PersonTarget: constants.DefaultTarget,
		PageSize:     constants.DefaultPageSize,
		Kinds:        []records.Kind{records.KindLegal, records.KindPerson},
	}
}

// Option is a function that configures harvest Options.
type Option func(*Options)

// Apply applies the given options.
func (o *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Validate checks the options.
func (o *Options) Validate() error {
	if o.PageSize <= 0 {
		return &errors.ValidationError{
			Field:   "PageSize",
			Value:   o.PageSize,
			Message: "page size must be positive",
		}
	}
	if o.LegalTarget < 0 {
		return &errors.ValidationError{
			Field:   "LegalTarget",
			Value:   o.LegalTarget,
			Message: "target must be non-negative",
		}
	}
	if o.PersonTarget < 0 {
		return &errors.ValidationError{
			Field:   "PersonTarget",
			Value:   o.PersonTarget,
			Message: "target must be non-negative",
		}
	}
	for _, k := range o.Kinds {
		if k != records.KindLegal && k != records.KindPerson {
			return &errors.ValidationError{
				Field:   "Kinds",
				Value:   k,
				Message: "unknown debtor kind",
			}
		}
	}
	return nil
}

func (o *Options) target(kind records.Kind) int {
	if kind == records.KindPerson {
		return o.PersonTarget
	}
	return o.LegalTarget
}

// WithLegalTarget sets the number of company records to emit.
func WithLegalTarget(n int) Option {
	return func(o *Options) {
		o.LegalTarget = n
	}
}

// WithPersonTarget sets the number of person records to emit.
func WithPersonTarget(n int) Option {
	return func(o *Options) {
		o.PersonTarget = n
	}
}

// WithPageSize sets the list page size.
func WithPageSize(n int) Option {
	return func(o *Options) {
		o.PageSize = n
	}
}

// WithKinds restricts the run to the given kinds.
func WithKinds(kinds ...records.Kind) Option {
	return func(o *Options) {
		if len(kinds) > 0 {
			o.Kinds = kinds
		}
	}
}
