package harvest

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/bankrot/internal/debtors"
	"github.com/agentstation/bankrot/internal/harvest"
	"github.com/agentstation/bankrot/internal/transport"
	"github.com/agentstation/bankrot/pkg/records"
)

// Flags holds the harvest command flags.
type Flags struct {
	Out           string
	Report        string
	Provenance    string
	LegalTarget   int
	PersonTarget  int
	PageSize      int
	Delay         time.Duration
	Kinds         []string
	ActiveDefault bool
	TradesHTML    bool

	cmd *cobra.Command
}

func addFlags(cmd *cobra.Command) *Flags {
	f := &Flags{cmd: cmd}
	fs := cmd.Flags()

	fs.StringVar(&f.Out, "out", "", "workbook path (default <output_dir>/fedresurs_debtors_<unix-millis>.xlsx)")
	fs.StringVar(&f.Report, "report", "", "write a markdown run report to this path (- for stdout)")
	fs.StringVar(&f.Provenance, "provenance", "", "write field provenance as YAML to this path")
	fs.IntVar(&f.LegalTarget, "legal-target", 0, "company records to collect (default from config)")
	fs.IntVar(&f.PersonTarget, "person-target", 0, "person records to collect (default from config)")
	fs.IntVar(&f.PageSize, "page-size", 0, "list items per page (default from config)")
	fs.DurationVar(&f.Delay, "delay", 0, "minimum spacing between upstream requests (default from config)")
	fs.StringSliceVar(&f.Kinds, "kinds", []string{string(records.KindLegal), string(records.KindPerson)}, "debtor kinds to harvest, in order")
	fs.BoolVar(&f.ActiveDefault, "active-default", true, `fill an unknown company case status with "Активно"`)
	fs.BoolVar(&f.TradesHTML, "trades-html", false, "count trades on the public card page when the biddings service has no count")

	return f
}

// harvestOptions layers explicitly set flags over the configured options.
func (f *Flags) harvestOptions(base []harvest.Option) []harvest.Option {
	opts := append([]harvest.Option(nil), base...)
	if f.changed("legal-target") {
		opts = append(opts, harvest.WithLegalTarget(f.LegalTarget))
	}
	if f.changed("person-target") {
		opts = append(opts, harvest.WithPersonTarget(f.PersonTarget))
	}
	if f.changed("page-size") {
		opts = append(opts, harvest.WithPageSize(f.PageSize))
	}

	kinds := make([]records.Kind, len(f.Kinds))
	for i, k := range f.Kinds {
		kinds[i] = records.Kind(k)
	}
	return append(opts, harvest.WithKinds(kinds...))
}

func (f *Flags) buildOptions(base debtors.Options) debtors.Options {
	if f.changed("active-default") {
		base.ActiveCaseDefault = f.ActiveDefault
	}
	if f.changed("trades-html") {
		base.TradesHTMLFallback = f.TradesHTML
	}
	return base
}

func (f *Flags) clientOptions() []transport.Option {
	if f.changed("delay") {
		return []transport.Option{transport.WithDelay(f.Delay)}
	}
	return nil
}

func (f *Flags) changed(name string) bool {
	return f.cmd != nil && f.cmd.Flags().Changed(name)
}
