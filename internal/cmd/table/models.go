// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"strconv"

	"github.com/agentstation/bankrot/internal/harvest"
	"github.com/agentstation/bankrot/internal/transport"
	"github.com/agentstation/bankrot/pkg/records"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// RecordToTableData converts a record to a two column field/value table.
// Empty fields are shown as "-" unless showEmpty is false, in which case
// they are left out.
func RecordToTableData(rec records.Record, showEmpty bool) Data {
	headers := rec.Headers()
	values := rec.Values()

	rows := make([][]string, 0, len(headers))
	for i, h := range headers {
		v := values[i]
		if v == "" {
			if !showEmpty {
				continue
			}
			v = "-"
		}
		rows = append(rows, []string{h, v})
	}

	return Data{
		Headers:         []string{"Field", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft},
	}
}

// SummaryToTableData converts a harvest summary to one row per kind.
func SummaryToTableData(s *harvest.Summary) Data {
	rows := make([][]string, 0, len(s.Kinds))
	for _, ks := range s.Kinds {
		done := "no"
		if ks.Done {
			done = "yes"
		}
		rows = append(rows, []string{
			ks.Kind.String(),
			strconv.Itoa(ks.Records),
			strconv.Itoa(ks.Blank),
			strconv.Itoa(ks.Pages),
			done,
		})
	}

	return Data{
		Headers: []string{"Kind", "Records", "Without guid", "Pages", "Complete"},
		Rows:    rows,
		ColumnAlignment: []Align{
			AlignLeft,   // Kind
			AlignRight,  // Records
			AlignRight,  // Without guid
			AlignRight,  // Pages
			AlignCenter, // Complete
		},
	}
}

// StatsToTableData converts per-service transport counters to a table.
func StatsToTableData(stats map[string]transport.Stats) Data {
	names := []string{"list", "card"}
	rows := make([][]string, 0, len(stats))
	for _, name := range names {
		s, ok := stats[name]
		if !ok {
			continue
		}
		rows = append(rows, []string{
			name,
			strconv.FormatInt(s.Requests, 10),
			strconv.FormatInt(s.Retries, 10),
			strconv.FormatInt(s.Failures, 10),
			strconv.FormatInt(s.CacheHits, 10),
		})
	}

	return Data{
		Headers:         []string{"Service", "Requests", "Retries", "Failures", "Cache hits"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight},
	}
}
