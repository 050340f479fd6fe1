// Package inspect implements the inspect command, which reconciles a single
// debtor and prints the resulting record.
package inspect

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/bankrot/internal/cmd/application"
	"github.com/agentstation/bankrot/internal/cmd/output"
	"github.com/agentstation/bankrot/internal/cmd/table"
	"github.com/agentstation/bankrot/internal/debtors"
	"github.com/agentstation/bankrot/internal/export"
	"github.com/agentstation/bankrot/pkg/errors"
	"github.com/agentstation/bankrot/pkg/logging"
	"github.com/agentstation/bankrot/pkg/payload"
	"github.com/agentstation/bankrot/pkg/provenance"
	"github.com/agentstation/bankrot/pkg/reconciler"
	"github.com/agentstation/bankrot/pkg/records"
)

// Flags holds the inspect command flags.
type Flags struct {
	All        bool
	Provenance bool
	Fields     []string
}

// NewCommand creates the inspect command using app context.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:       "inspect <legal|person> <guid>",
		GroupID:   "core",
		Short:     "Reconcile one debtor and print the record",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(records.KindLegal), string(records.KindPerson)},
		Long: `Inspect builds the record of a single debtor the same way harvest does and
prints it. With -v, or --provenance, it also prints which source and merge
stage filled each field.`,
		Example: `  bankrot inspect legal 0f3a...          # company card as a table
  bankrot inspect person 5b1c... -o json # person record as JSON
  bankrot inspect legal 0f3a... -v --fields 'case*'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose := cmd.Flags().Lookup("verbose"); verbose != nil && verbose.Value.String() == "true" {
				flags.Provenance = true
			}
			return Execute(cmd.Context(), app, records.Kind(args[0]), args[1], flags, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVarP(&flags.All, "all", "a", false, "show blank fields in table output")
	cmd.Flags().BoolVar(&flags.Provenance, "provenance", false, "print field provenance")
	cmd.Flags().StringSliceVar(&flags.Fields, "fields", nil, "limit provenance to fields matching these patterns")

	return cmd
}

// Execute builds one record of kind for guid and prints it.
func Execute(ctx context.Context, app application.Application, kind records.Kind, guid string, flags *Flags, out io.Writer) error {
	if kind != records.KindLegal && kind != records.KindPerson {
		return errors.NewValidationError("kind", kind, "must be legal or person")
	}
	guid = strings.TrimSpace(guid)
	if guid == "" {
		return errors.NewValidationError("guid", guid, "must not be empty")
	}

	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}
	format = output.DetectFormat(string(format), out)

	ctx = logging.WithLogger(ctx, app.Logger())
	_, card := app.Clients()

	tracker := provenance.NewTracker(true)
	merger, err := reconciler.New(reconciler.WithTracker(tracker))
	if err != nil {
		return err
	}

	item, err := listItem(guid)
	if err != nil {
		return err
	}

	var sink export.Memory
	var rec records.Record
	switch kind {
	case records.KindPerson:
		built, _ := debtors.NewPersonBuilder(card, merger).Build(ctx, item)
		_ = sink.AppendPerson(built)
		rec = &sink.Persons[0]
	default:
		built, _ := debtors.NewLegalBuilder(card, merger, app.BuildOptions()).Build(ctx, item)
		_ = sink.AppendLegal(built)
		rec = &sink.Legal[0]
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := output.FormatRecord(out, rec, format, flags.All); err != nil {
		return err
	}

	if !flags.Provenance {
		return nil
	}
	fields := table.FilterProvenance(tracker.FindByRecord(kind, guid), flags.Fields)
	return output.PrintTable(out, table.ProvenanceToTableData(fields, rec.Headers()))
}

// listItem stands in for the list entry of guid.
func listItem(guid string) (payload.Node, error) {
	body, err := json.Marshal(map[string]string{"guid": guid})
	if err != nil {
		return payload.Node{}, errors.WrapParse("json", "guid", err)
	}
	return payload.Decode(body)
}
