package output

import (
	"io"

	"github.com/agentstation/bankrot/internal/cmd/table"
	"github.com/agentstation/bankrot/pkg/records"
)

// FormatRecord prints one record. Tables hide blank fields unless
// showEmpty is set; json and yaml always print the full record.
func FormatRecord(w io.Writer, rec records.Record, format Format, showEmpty bool) error {
	if format == FormatTable || format == "" {
		return (&TableFormatter{ShowEmpty: showEmpty}).Format(w, rec)
	}
	return NewFormatter(format).Format(w, rec)
}

// PrintTable prints table data in table format regardless of the
// configured format. It is used for secondary output such as summaries.
func PrintTable(w io.Writer, data table.Data) error {
	return (&TableFormatter{}).Format(w, data)
}

// FormatAny handles the common pattern of formatting any data type for output.
// This is useful for commands with custom data structures.
func FormatAny(w io.Writer, data any, format Format) error {
	return NewFormatter(format).Format(w, data)
}
