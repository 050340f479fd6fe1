// Package harvest drives a full run: it pages the debtor lists, builds one
// record per list item and appends it to a sink.
//
// Processing is strictly sequential. A page is fetched, then every item on
// it is reconciled completely before the next item starts, which keeps the
// request rate towards the upstream predictable.
package harvest

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agentstation/bankrot/internal/debtors"
	"github.com/agentstation/bankrot/internal/sources/fedresurs"
	"github.com/agentstation/bankrot/pkg/errors"
	"github.com/agentstation/bankrot/pkg/logging"
	"github.com/agentstation/bankrot/pkg/payload"
	"github.com/agentstation/bankrot/pkg/provenance"
	"github.com/agentstation/bankrot/pkg/reconciler"
	"github.com/agentstation/bankrot/pkg/records"
)

// Sink receives finished records in list order.
type Sink interface {
	AppendLegal(rec records.LegalEntity) error
	AppendPerson(rec records.Person) error
}

// Config wires a Runner to its collaborators.
type Config struct {
	List    debtors.Fetcher    // Paginated list service
	Card    debtors.Fetcher    // Card service and its sub-resources
	Sink    Sink               // Destination of records
	Build   debtors.Options    // Record assembly options
	Tracker provenance.Tracker // Optional; a fresh tracker is used when nil
}

// Runner executes harvest runs.
type Runner struct {
	list    debtors.Fetcher
	sink    Sink
	legal   *debtors.LegalBuilder
	person  *debtors.PersonBuilder
	tracker provenance.Tracker
	opts    *Options
}

// New creates a Runner.
func New(cfg Config, opts ...Option) (*Runner, error) {
	switch {
	case cfg.List == nil:
		return nil, errors.NewValidationError("List", nil, "list fetcher is required")
	case cfg.Card == nil:
		return nil, errors.NewValidationError("Card", nil, "card fetcher is required")
	case cfg.Sink == nil:
		return nil, errors.NewValidationError("Sink", nil, "sink is required")
	}

	options := Defaults().Apply(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}

	tracker := cfg.Tracker
	if tracker == nil {
		tracker = provenance.NewTracker(true)
	}
	merger, err := reconciler.New(reconciler.WithTracker(tracker))
	if err != nil {
		return nil, err
	}

	return &Runner{
		list:    cfg.List,
		sink:    cfg.Sink,
		legal:   debtors.NewLegalBuilder(cfg.Card, merger, cfg.Build),
		person:  debtors.NewPersonBuilder(cfg.Card, merger),
		tracker: tracker,
		opts:    options,
	}, nil
}

// Run harvests every configured kind. On cancellation or a sink failure it
// returns the partial summary together with the error.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.FromContext(ctx)

	summary := &Summary{
		RunID:      runID,
		Started:    time.Now(),
		Provenance: r.tracker,
	}

	logger.Info().
		Int("legal_target", r.opts.LegalTarget).
		Int("person_target", r.opts.PersonTarget).
		Int("page_size", r.opts.PageSize).
		Msg("Starting harvest")

	for _, kind := range r.opts.Kinds {
		ks := summary.Kind(kind)
		if err := r.harvest(logging.WithEntity(ctx, kind.String()), kind, ks); err != nil {
			summary.Duration = time.Since(summary.Started)
			logger.Warn().Err(err).Str("summary", summary.String()).Msg("Harvest stopped early")
			return summary, err
		}
		ks.Done = true
	}

	summary.Duration = time.Since(summary.Started)
	logger.Info().Str("summary", summary.String()).Msg("Harvest finished")
	return summary, nil
}

func (r *Runner) harvest(ctx context.Context, kind records.Kind, ks *KindSummary) error {
	logger := logging.FromContext(ctx)
	target := r.opts.target(kind)

	for offset := 0; ks.Records < target; offset += r.opts.PageSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		items := r.page(ctx, kind, offset)
		ks.Pages++
		if len(items) == 0 {
			logger.Info().Int("offset", offset).Int("records", ks.Records).Msg("List exhausted")
			return nil
		}

		for _, item := range items {
			if ks.Records >= target {
				break
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := r.emit(ctx, kind, item, ks); err != nil {
				return err
			}
		}

		logger.Info().
			Int("offset", offset).
			Int("items", len(items)).
			Int("records", ks.Records).
			Int("target", target).
			Msg("Processed list page")
	}
	return nil
}

// page fetches one list page. An unavailable or malformed page has no items.
func (r *Runner) page(ctx context.Context, kind records.Kind, offset int) []payload.Node {
	path := fedresurs.CompanyList(r.opts.PageSize, offset)
	if kind == records.KindPerson {
		path = fedresurs.PersonList(r.opts.PageSize, offset)
	}

	root, err := payload.Decode(r.list.Get(ctx, path, nil))
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("path", path).Msg("Discarding malformed list page")
		return nil
	}
	return root.Get("pageData").Elems()
}

func (r *Runner) emit(ctx context.Context, kind records.Kind, item payload.Node, ks *KindSummary) error {
	guid := item.Get("guid").Text()

	var (
		ok  bool
		err error
	)
	switch kind {
	case records.KindPerson:
		var rec records.Person
		if rec, ok = r.person.Build(ctx, item); ctx.Err() != nil {
			return ctx.Err()
		}
		err = r.sink.AppendPerson(rec)
	default:
		var rec records.LegalEntity
		if rec, ok = r.legal.Build(ctx, item); ctx.Err() != nil {
			return ctx.Err()
		}
		err = r.sink.AppendLegal(rec)
	}
	if err != nil {
		return errors.WrapResource("append", kind.String()+" record", guid, err)
	}

	ks.Records++
	if !ok {
		ks.Blank++
		logging.FromContext(ctx).Warn().Int("index", ks.Records).Msg("List item without guid, appended empty record")
	}
	return nil
}
