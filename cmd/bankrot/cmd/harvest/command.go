// Package harvest implements the harvest command, which runs a full batch
// and saves the records to an xlsx workbook.
package harvest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/bankrot/internal/cmd/alerts"
	"github.com/agentstation/bankrot/internal/cmd/application"
	"github.com/agentstation/bankrot/internal/cmd/output"
	"github.com/agentstation/bankrot/internal/cmd/table"
	"github.com/agentstation/bankrot/internal/export"
	"github.com/agentstation/bankrot/internal/harvest"
	"github.com/agentstation/bankrot/internal/transport"
	"github.com/agentstation/bankrot/pkg/errors"
	"github.com/agentstation/bankrot/pkg/logging"
	"github.com/agentstation/bankrot/pkg/provenance"
)

// NewCommand creates the harvest command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "harvest",
		GroupID: "core",
		Short:   "Collect insolvent companies and persons into a workbook",
		Args:    cobra.NoArgs,
		Long: `Harvest pages the Fedresurs debtor lists, reconciles every debtor from the
list item, its card and the card's sub-resources, and writes one row per
debtor to an xlsx workbook with a sheet per kind.

Companies are harvested first, then persons. Each kind stops when its target
is reached or the list runs out. Interrupting the command stops between
debtors; the records collected so far are still saved.`,
		Example: `  bankrot harvest                                 # 300 companies and 300 persons
  bankrot harvest --legal-target 50 --kinds legal # 50 companies only
  bankrot harvest --out debtors.xlsx --report -   # report to stdout
  bankrot harvest --delay 1s --trades-html        # slower, scrape trade counts`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Execute(cmd.Context(), app, flags, cmd.OutOrStdout())
		},
	}

	flags = addFlags(cmd)

	return cmd
}

// Execute runs one harvest and writes its artifacts. The workbook is saved
// even when the run stops early; the run error is returned afterwards.
func Execute(ctx context.Context, app application.Application, flags *Flags, out io.Writer) error {
	logger := app.Logger()
	ctx = logging.WithLogger(ctx, logger)
	started := time.Now()

	path := flags.Out
	if path == "" {
		path = filepath.Join(app.OutputDir(), export.DefaultFileName(started))
	}

	list, card := app.Clients(flags.clientOptions()...)

	wb, err := export.NewWorkbook()
	if err != nil {
		return err
	}
	defer func() { _ = wb.Close() }()

	tracker := provenance.NewTracker(true)
	runner, err := harvest.New(harvest.Config{
		List:    list,
		Card:    card,
		Sink:    wb,
		Build:   flags.buildOptions(app.BuildOptions()),
		Tracker: tracker,
	}, flags.harvestOptions(app.HarvestOptions())...)
	if err != nil {
		return err
	}

	summary, runErr := runner.Run(ctx)
	if summary == nil {
		return runErr
	}

	if err := wb.Save(path); err != nil {
		return err
	}
	logger.Info().
		Str("path", path).
		Int("records", summary.Total()).
		Str("run_id", summary.RunID).
		Msg("Workbook saved")

	if err := writeArtifacts(flags, summary, out); err != nil {
		return err
	}
	if err := report(alerts.NewWriterTo(out, false), flags, path, summary, runErr); err != nil {
		return err
	}

	if err := output.PrintTable(out, table.SummaryToTableData(summary)); err != nil {
		return err
	}
	if err := output.PrintTable(out, table.StatsToTableData(map[string]transport.Stats{
		"list": list.Stats(),
		"card": card.Stats(),
	})); err != nil {
		return err
	}

	return runErr
}

// report prints where the records went and what went wrong.
func report(w alerts.Writer, flags *Flags, path string, summary *harvest.Summary, runErr error) error {
	msgs := []*alerts.Alert{
		alerts.NewSuccess(fmt.Sprintf("Saved %d records to %s", summary.Total(), path)).
			WithDetails(summary.String()),
	}
	if flags.Report != "" && flags.Report != "-" {
		msgs = append(msgs, alerts.NewInfo("Wrote run report to "+flags.Report))
	}
	if flags.Provenance != "" {
		msgs = append(msgs, alerts.NewInfo("Wrote field provenance to "+flags.Provenance))
	}
	for _, ks := range summary.Kinds {
		if ks.Blank > 0 {
			msgs = append(msgs, alerts.NewWarning(fmt.Sprintf("%d %s list items had no guid and were saved as empty rows", ks.Blank, ks.Kind)))
		}
	}
	if runErr != nil {
		msgs = append(msgs, alerts.NewWarning("Harvest stopped early, the workbook holds a partial result").WithError(runErr))
	}

	for _, a := range msgs {
		if err := w.WriteAlert(a); err != nil {
			return err
		}
	}
	return nil
}

func writeArtifacts(flags *Flags, summary *harvest.Summary, out io.Writer) error {
	if flags.Provenance != "" {
		pf := &provenance.ProvenanceFile{RunID: summary.RunID, Provenance: summary.Provenance.Map()}
		if err := provenance.Save(flags.Provenance, pf); err != nil {
			return err
		}
	}

	switch flags.Report {
	case "":
		return nil
	case "-":
		return export.WriteReport(out, summary)
	default:
		f, err := os.Create(flags.Report)
		if err != nil {
			return errors.WrapIO("create", flags.Report, err)
		}
		if err := export.WriteReport(f, summary); err != nil {
			_ = f.Close()
			return errors.WrapIO("write", flags.Report, err)
		}
		if err := f.Close(); err != nil {
			return errors.WrapIO("close", flags.Report, err)
		}
		return nil
	}
}
