package harvest

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/bankrot/pkg/provenance"
	"github.com/agentstation/bankrot/pkg/records"
)

// Summary is the outcome of a harvest run.
type Summary struct {
	RunID      string
	Started    time.Time
	Duration   time.Duration
	Kinds      []*KindSummary
	Provenance provenance.Tracker
}

// KindSummary counts the work done for one debtor kind.
type KindSummary struct {
	Kind    records.Kind
	Records int // Records appended to the sink, blank ones included
	Blank   int // Items without a guid
	Pages   int // List pages fetched
	Done    bool
}

// Kind returns the summary for kind, creating it if needed.
func (s *Summary) Kind(kind records.Kind) *KindSummary {
	for _, ks := range s.Kinds {
		if ks.Kind == kind {
			return ks
		}
	}
	ks := &KindSummary{Kind: kind}
	s.Kinds = append(s.Kinds, ks)
	return ks
}

// Total returns the number of records appended across kinds.
func (s *Summary) Total() int {
	n := 0
	for _, ks := range s.Kinds {
		n += ks.Records
	}
	return n
}

// String returns a one-line human-readable summary.
func (s *Summary) String() string {
	if len(s.Kinds) == 0 {
		return "No records harvested"
	}

	parts := make([]string, 0, len(s.Kinds))
	for _, ks := range s.Kinds {
		parts = append(parts, ks.String())
	}
	return fmt.Sprintf("%d records in %s (%s)", s.Total(), s.Duration.Round(time.Millisecond), strings.Join(parts, "; "))
}

// String returns a human-readable summary of one kind.
func (ks *KindSummary) String() string {
	out := fmt.Sprintf("%s: %d records from %d pages", ks.Kind, ks.Records, ks.Pages)
	if ks.Blank > 0 {
		out += fmt.Sprintf(", %d without guid", ks.Blank)
	}
	return out
}
