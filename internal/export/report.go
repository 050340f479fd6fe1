package export

import (
	"io"
	"strconv"
	"strings"
	"time"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/bankrot/internal/harvest"
	"github.com/agentstation/bankrot/pkg/provenance"
)

// WriteReport renders a markdown report of a harvest run: record counts per
// kind, then for every field how many records each source filled.
func WriteReport(w io.Writer, s *harvest.Summary) error {
	doc := md.NewMarkdown(w)

	doc.H1("Harvest report").
		PlainTextf("Run %s started %s and took %s.",
			md.Code(s.RunID),
			s.Started.Format(time.RFC3339),
			s.Duration.Round(time.Millisecond)).
		LF()

	rows := make([][]string, 0, len(s.Kinds))
	for _, ks := range s.Kinds {
		rows = append(rows, []string{
			ks.Kind.String(),
			strconv.Itoa(ks.Records),
			strconv.Itoa(ks.Blank),
			strconv.Itoa(ks.Pages),
			yesNo(ks.Done),
		})
	}
	doc.H2("Records").
		Table(md.TableSet{
			Header: []string{"Kind", "Records", "Without guid", "Pages", "Complete"},
			Rows:   rows,
		})

	doc.H2("Field coverage")
	coverage := coverageRows(s.Provenance)
	if len(coverage) == 0 {
		doc.PlainText("No provenance was recorded.").LF()
	} else {
		doc.Table(md.TableSet{
			Header: []string{"Kind", "Field", "Source", "Records"},
			Rows:   coverage,
		})
	}

	return doc.Build()
}

func coverageRows(tracker provenance.Tracker) [][]string {
	if tracker == nil {
		return nil
	}
	var rows [][]string
	for _, c := range provenance.Coverage(tracker.Map()) {
		rows = append(rows, []string{
			c.Kind.String(),
			c.Field,
			md.Code(strings.ReplaceAll(c.Source, "|", `\|`)),
			strconv.Itoa(c.Count),
		})
	}
	return rows
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
