package export_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/agentstation/bankrot/internal/export"
	"github.com/agentstation/bankrot/internal/harvest"
	"github.com/agentstation/bankrot/pkg/provenance"
	"github.com/agentstation/bankrot/pkg/records"
)

func TestWorkbook_SaveAndReopen(t *testing.T) {
	wb, err := export.NewWorkbook()
	require.NoError(t, err)
	defer func() { _ = wb.Close() }()

	require.NoError(t, wb.AppendLegal(records.LegalEntity{FullName: "ООО Ромашка", INN: "7700000001", CaseStatus: "Активно"}))
	require.NoError(t, wb.AppendLegal(records.LegalEntity{}))
	require.NoError(t, wb.AppendPerson(records.Person{FullName: "Иванов Иван Иванович", SNILS: "123-456-789 00"}))
	assert.Equal(t, 2, wb.Rows(export.LegalSheet))
	assert.Equal(t, 1, wb.Rows(export.PersonSheet))

	dir := t.TempDir()
	path := filepath.Join(dir, export.DefaultFileName(time.UnixMilli(1700000000000)))
	require.NoError(t, wb.Save(path))
	assert.Equal(t, "fedresurs_debtors_1700000000000.xlsx", filepath.Base(path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp file is left behind")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{export.LegalSheet, export.PersonSheet}, f.GetSheetList())

	legal, err := f.GetRows(export.LegalSheet)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(legal), 2)
	assert.Equal(t, records.LegalHeaders(), legal[0])
	assert.Equal(t, "ООО Ромашка", legal[1][0])
	assert.Equal(t, "7700000001", legal[1][1])

	persons, err := f.GetRows(export.PersonSheet)
	require.NoError(t, err)
	require.Len(t, persons, 2)
	assert.Equal(t, records.PersonHeaders(), persons[0])
	assert.Equal(t, "Иванов Иван Иванович", persons[1][0])
}

func TestWorkbook_SaveIntoMissingDir(t *testing.T) {
	wb, err := export.NewWorkbook()
	require.NoError(t, err)
	defer func() { _ = wb.Close() }()

	err = wb.Save(filepath.Join(t.TempDir(), "missing", "out.xlsx"))
	require.Error(t, err)
}

func TestMemory(t *testing.T) {
	var m export.Memory
	var sink harvest.Sink = &m

	require.NoError(t, sink.AppendLegal(records.LegalEntity{INN: "1"}))
	require.NoError(t, sink.AppendPerson(records.Person{INN: "2"}))
	assert.Len(t, m.Legal, 1)
	assert.Equal(t, "2", m.Persons[0].INN)
}

func TestWriteReport(t *testing.T) {
	tracker := provenance.NewTracker(true)
	tracker.Track(records.KindLegal, "g1", records.FullName, provenance.Provenance{Source: "card.fullName|name|shortName", Stage: "detail", Value: "ООО Ромашка"})
	tracker.Track(records.KindLegal, "g2", records.FullName, provenance.Provenance{Source: "card.fullName|name|shortName", Stage: "detail", Value: "ООО Лютик"})
	tracker.Track(records.KindLegal, "g2", records.CaseStatus, provenance.Provenance{Source: "placeholder", Stage: "defaults", Value: "Активно"})

	summary := &harvest.Summary{
		RunID:      "run-1",
		Started:    time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Duration:   1500 * time.Millisecond,
		Provenance: tracker,
	}
	legal := summary.Kind(records.KindLegal)
	legal.Records, legal.Blank, legal.Pages, legal.Done = 3, 1, 1, true

	var buf bytes.Buffer
	require.NoError(t, export.WriteReport(&buf, summary))

	out := buf.String()
	assert.Contains(t, out, "# Harvest report")
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "## Records")
	assert.Contains(t, out, "Without guid")
	assert.Contains(t, out, "## Field coverage")
	assert.Contains(t, out, "card.fullName")
	assert.Contains(t, out, "placeholder")
}

func TestWriteReport_NoProvenance(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteReport(&buf, &harvest.Summary{RunID: "run-2"}))
	assert.Contains(t, buf.String(), "No provenance was recorded.")
}
