// Package debtors builds normalized debtor records from fedresurs list items.
//
// A builder takes one list item and walks it through four merge stages:
// the list item itself, the debtor card, the card's auxiliary sub-resources
// and finally placeholders. Each stage is a reconciler.Plan applied
// write-once, so a value found early is never replaced by a later stage.
//
// Upstream failures never surface as errors. The Fetcher returns an empty
// body for anything it could not retrieve, and every field depending on that
// body simply stays blank or falls through to its next source.
package debtors

import (
	"context"
	"strconv"
	"strings"

	"github.com/agentstation/bankrot/pkg/constants"
	"github.com/agentstation/bankrot/pkg/logging"
	"github.com/agentstation/bankrot/pkg/payload"
	"github.com/agentstation/bankrot/pkg/reconciler"
	"github.com/agentstation/bankrot/pkg/status"

	"github.com/agentstation/bankrot/internal/sources/fedresurs"
)

// Fetcher retrieves raw upstream bodies. *transport.Client implements it.
type Fetcher interface {
	// Get returns the body at path, or nil when it is unavailable.
	Get(ctx context.Context, path string, headers map[string]string) []byte
	// URL returns the absolute URL of path.
	URL(path string) string
}

// Merge stages, in application order.
const (
	StageList      = "list"
	StageDetail    = "detail"
	StageAuxiliary = "auxiliary"
	StageDefaults  = "defaults"
)

// State is a step of the per-item build.
type State string

// Build states.
const (
	StateNoGUID            State = "NoGuid"
	StateHasGUID           State = "HasGuid"
	StateListFieldsApplied State = "ListFieldsApplied"
	StateDetailMerged      State = "DetailMerged"
	StateAuxiliaryFilled   State = "AuxiliaryFilled"
	StateDefaultsFilled    State = "DefaultsFilled"
)

// Options tunes record assembly.
type Options struct {
	// ActiveCaseDefault fills an unknown case status with "Активно". The
	// list endpoints only return debtors with an active case.
	ActiveCaseDefault bool
	// TradesHTMLFallback scrapes the public card page when the biddings
	// endpoint yields no count.
	TradesHTMLFallback bool
}

// DefaultOptions returns the options used by the harvest command.
func DefaultOptions() Options {
	return Options{ActiveCaseDefault: true}
}

// completedStage maps a build state to the merge stage that produced it.
var completedStage = map[State]string{
	StateListFieldsApplied: StageList,
	StateDetailMerged:      StageDetail,
	StateAuxiliaryFilled:   StageAuxiliary,
	StateDefaultsFilled:    StageDefaults,
}

func enter(ctx context.Context, s State) {
	if stage, ok := completedStage[s]; ok {
		ctx = logging.WithStage(ctx, stage)
	}
	logging.FromContext(ctx).Debug().Str("state", string(s)).Msg("Entered build state")
}

// doc is one upstream payload feeding a plan. Remote documents are fetched on
// first use, so a sub-resource is only requested when some blank field asks
// for it.
type doc struct {
	name   string
	load   func() payload.Node
	node   payload.Node
	loaded bool
}

func local(name string, n payload.Node) *doc {
	return &doc{name: name, node: n, loaded: true}
}

func remote(ctx context.Context, f Fetcher, name, path string) *doc {
	return &doc{name: name, load: func() payload.Node {
		return fetch(ctx, f, path)
	}}
}

// fetch retrieves and decodes path. Malformed bodies count as empty.
func fetch(ctx context.Context, f Fetcher, path string) payload.Node {
	body := f.Get(ctx, path, fedresurs.CardReferer())
	n, err := payload.Decode(body)
	if err != nil {
		logging.FromContext(ctx).Debug().Err(err).Str("path", path).Msg("Discarding malformed payload")
		return payload.Node{}
	}
	return n
}

// Node returns the payload, fetching it if needed.
func (d *doc) Node() payload.Node {
	if !d.loaded {
		d.node = d.load()
		d.loaded = true
	}
	return d.node
}

// Sub derives a document from part of d, e.g. the first page entry.
func (d *doc) Sub(name string, pick func(payload.Node) payload.Node) *doc {
	return &doc{name: name, load: func() payload.Node {
		return pick(d.Node())
	}}
}

func (d *doc) source(src func(payload.Node) reconciler.Source) reconciler.Source {
	probe := src(payload.Node{})
	return reconciler.Func(d.name+"."+probe.Name, func() string {
		return src(d.Node()).Resolve()
	})
}

// Path reads a direct path.
func (d *doc) Path(keys ...string) reconciler.Source {
	return d.source(func(n payload.Node) reconciler.Source { return reconciler.Path(n, keys...) })
}

// Keys reads the first non-blank direct key.
func (d *doc) Keys(keys ...string) reconciler.Source {
	return d.source(func(n payload.Node) reconciler.Source { return reconciler.Keys(n, keys...) })
}

// Deep searches the whole payload.
func (d *doc) Deep(keys ...string) reconciler.Source {
	return d.source(func(n payload.Node) reconciler.Source { return reconciler.Deep(n, keys...) })
}

// Flags infers a case status from boolean flags.
func (d *doc) Flags() reconciler.Source {
	return reconciler.Func(d.name+".flags", func() string {
		return status.FromFlags(d.Node())
	})
}

// Count reads a paging total.
func (d *doc) Count() reconciler.Source {
	return reconciler.Func(d.name+".count", func() string {
		return readCount(d.Node())
	})
}

// Func wraps a resolver over the payload.
func (d *doc) Func(name string, fn func(payload.Node) string) reconciler.Source {
	return reconciler.Func(d.name+"."+name, func() string {
		return fn(d.Node())
	})
}

var countKeys = []string{"found", "total", "count"}

// readCount returns the number of entries announced by a paged response:
// the first non-negative total, else the length of pageData. An empty
// payload has no count.
func readCount(n payload.Node) string {
	if n.Missing() {
		return ""
	}
	for _, key := range countKeys {
		if v, ok := n.Get(key).Int(); ok && v >= 0 {
			return strconv.Itoa(v)
		}
	}
	if pd := n.Get("pageData"); pd.IsArray() {
		return strconv.Itoa(pd.Len())
	}
	return ""
}

func placeholder(field string) reconciler.Rule {
	return reconciler.Rule{Field: field, Chain: reconciler.Of(reconciler.Value("placeholder", constants.NotAvailable))}
}

// joinCodeName renders a classifier as "code — name", or whichever half is
// present.
func joinCodeName(code, name string) string {
	code, name = strings.TrimSpace(code), strings.TrimSpace(name)
	switch {
	case code != "" && name != "":
		return code + " — " + name
	case code != "":
		return code
	default:
		return name
	}
}

func firstPage(n payload.Node) payload.Node {
	return n.Get("pageData").First()
}
