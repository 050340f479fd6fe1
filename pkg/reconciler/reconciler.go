// Package reconciler merges field values from several partial sources into a
// normalized record using declared, ordered fallback chains.
//
// A Plan is data: each Rule names a record column and the ordered sources
// that may fill it. Applying a plan never overwrites a field that already
// holds a value, so earlier stages always win over later ones, while inside
// one stage the chain order decides.
//
//	plan := reconciler.Plan{
//		{Field: records.CaseNumber, Chain: reconciler.Of(
//			reconciler.Path(last, "number"),
//			reconciler.Path(item, "caseNumber"),
//		)},
//	}
//	filled := r.Apply(ctx, rec, guid, "list", plan)
package reconciler

import (
	"context"
	"strings"

	"github.com/agentstation/bankrot/pkg/logging"
	"github.com/agentstation/bankrot/pkg/provenance"
	"github.com/agentstation/bankrot/pkg/records"
)

// Rule binds a record column to its fallback chain.
type Rule struct {
	Field string
	Chain Chain
}

// Plan is one merge stage: rules evaluated in order.
type Plan []Rule

// Reconciler applies merge plans to records.
type Reconciler interface {
	// Apply fills blank fields of rec from plan and returns how many fields
	// it wrote. id identifies the record in provenance.
	Apply(ctx context.Context, rec records.Record, id string, stage string, plan Plan) int

	// Provenance returns the tracker receiving winning sources.
	Provenance() provenance.Tracker
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	provenance provenance.Tracker
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	tracker := options.tracker
	if tracker == nil {
		tracker = provenance.NewTracker(options.tracking)
	}
	return &reconciler{provenance: tracker}, nil
}

// Apply fills every blank field named by plan with the first non-blank
// value of its chain. Filled fields are left alone and their chains are not
// evaluated. Unknown columns are logged and skipped.
func (r *reconciler) Apply(ctx context.Context, rec records.Record, id string, stage string, plan Plan) int {
	logger := logging.FromContext(ctx)

	filled := 0
	for _, rule := range plan {
		field := rec.Field(rule.Field)
		if field == nil {
			logger.Warn().
				Str("field", rule.Field).
				Str("stage", stage).
				Msg("Unknown record field in merge plan")
			continue
		}
		if strings.TrimSpace(*field) != "" {
			continue
		}

		value, source := rule.Chain.Resolve()
		if value == "" {
			continue
		}

		*field = value
		filled++
		r.provenance.Track(rec.Kind(), id, rule.Field, provenance.Provenance{
			Source: source,
			Stage:  stage,
			Value:  value,
		})
	}

	logger.Debug().
		Str("stage", stage).
		Int("filled", filled).
		Int("rules", len(plan)).
		Msg("Applied merge stage")

	return filled
}

// Provenance returns the tracker.
func (r *reconciler) Provenance() provenance.Tracker {
	return r.provenance
}
