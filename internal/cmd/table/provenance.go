package table

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/agentstation/bankrot/pkg/provenance"
)

// ProvenanceToTableData converts the provenance of one record to table format.
// Fields appear in the order given by order; fields missing from order follow
// alphabetically. Only the first write of a field is current.
func ProvenanceToTableData(fieldProvenance map[string][]provenance.Provenance, order []string) Data {
	var rows [][]string

	for _, field := range orderFields(fieldProvenance, order) {
		history := fieldProvenance[field]
		if len(history) == 0 {
			continue
		}

		for i, entry := range history {
			// Field name only on first row, blank for subsequent entries
			fieldName := ""
			currentIndicator := ""
			if i == 0 {
				fieldName = field
				currentIndicator = "→"
			}

			rows = append(rows, []string{
				fieldName,
				currentIndicator,
				formatValue(entry.Value),
				entry.Source,
				entry.Stage,
				formatTimestamp(entry.Timestamp),
				entry.Reason,
			})
		}
	}

	return Data{
		Headers: []string{"Field", "Curr", "Value", "Source", "Stage", "When", "Reason"},
		Rows:    rows,
		ColumnAlignment: []Align{
			AlignLeft,   // Field
			AlignCenter, // Curr
			AlignLeft,   // Value
			AlignLeft,   // Source
			AlignLeft,   // Stage
			AlignLeft,   // When
			AlignLeft,   // Reason
		},
	}
}

func orderFields(fieldProvenance map[string][]provenance.Provenance, order []string) []string {
	seen := make(map[string]bool, len(fieldProvenance))
	fields := make([]string, 0, len(fieldProvenance))
	for _, f := range order {
		if _, ok := fieldProvenance[f]; ok && !seen[f] {
			fields = append(fields, f)
			seen[f] = true
		}
	}

	var rest []string
	for f := range fieldProvenance {
		if !seen[f] {
			rest = append(rest, f)
		}
	}
	sort.Strings(rest)
	return append(fields, rest...)
}

// MatchField checks if a field matches any of the provided patterns.
// Supports wildcard matching (e.g., "case*" matches "CaseNumber").
// Matching is case-insensitive for better user experience.
func MatchField(field string, patterns []string) bool {
	if len(patterns) == 0 {
		return true // No patterns means match all
	}

	fieldLower := strings.ToLower(field)
	for _, pattern := range patterns {
		matched, err := filepath.Match(strings.ToLower(pattern), fieldLower)
		if err == nil && matched {
			return true
		}
	}

	return false
}

// FilterProvenance keeps the fields matching any of patterns.
func FilterProvenance(fieldProvenance map[string][]provenance.Provenance, patterns []string) map[string][]provenance.Provenance {
	if len(patterns) == 0 {
		return fieldProvenance
	}
	out := make(map[string][]provenance.Provenance)
	for field, history := range fieldProvenance {
		if MatchField(field, patterns) {
			out[field] = history
		}
	}
	return out
}

func formatValue(v string) string {
	if v == "" {
		return "<empty>"
	}
	return v
}

// formatTimestamp formats a timestamp for display.
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}

	diff := time.Since(t)
	if diff < time.Minute {
		return "just now"
	}
	if diff < time.Hour {
		return fmt.Sprintf("%d min ago", int(diff.Minutes()))
	}
	if diff < 24*time.Hour {
		return fmt.Sprintf("%d hr ago", int(diff.Hours()))
	}

	return t.Format("2006-01-02 15:04")
}
