// Package export writes harvested records to their destinations: an xlsx
// workbook, memory, and a markdown run report.
package export

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/bankrot/pkg/constants"
	"github.com/agentstation/bankrot/pkg/errors"
	"github.com/agentstation/bankrot/pkg/records"
)

// Sheet names.
const (
	LegalSheet  = "LegalEntities"
	PersonSheet = "PhysicalPersons"
)

// columnWidth is the width applied to every column.
const columnWidth = 28

// Workbook is an xlsx sink with one sheet per debtor kind.
type Workbook struct {
	file *excelize.File
	next map[string]int
}

// NewWorkbook creates a workbook with styled header rows.
func NewWorkbook() (*Workbook, error) {
	f := excelize.NewFile()
	w := &Workbook{file: f, next: make(map[string]int)}

	if err := f.SetSheetName(f.GetSheetName(0), LegalSheet); err != nil {
		_ = f.Close()
		return nil, errors.WrapResource("create", "sheet", LegalSheet, err)
	}
	if _, err := f.NewSheet(PersonSheet); err != nil {
		_ = f.Close()
		return nil, errors.WrapResource("create", "sheet", PersonSheet, err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		_ = f.Close()
		return nil, errors.WrapResource("create", "style", "header", err)
	}

	for _, s := range []struct {
		sheet   string
		headers []string
	}{
		{LegalSheet, records.LegalHeaders()},
		{PersonSheet, records.PersonHeaders()},
	} {
		if err := w.writeHeader(s.sheet, s.headers, header); err != nil {
			_ = f.Close()
			return nil, errors.WrapResource("create", "sheet", s.sheet, err)
		}
	}

	f.SetActiveSheet(0)
	return w, nil
}

func (w *Workbook) writeHeader(sheet string, headers []string, style int) error {
	last, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err := w.file.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	if err := w.file.SetCellStyle(sheet, "A1", last+"1", style); err != nil {
		return err
	}
	if err := w.file.SetColWidth(sheet, "A", last, columnWidth); err != nil {
		return err
	}
	if err := w.file.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}
	if err := w.file.AutoFilter(sheet, "A1:"+last+"1", nil); err != nil {
		return err
	}
	w.next[sheet] = 2
	return nil
}

// AppendLegal writes a company row.
func (w *Workbook) AppendLegal(rec records.LegalEntity) error {
	return w.append(LegalSheet, &rec)
}

// AppendPerson writes a person row.
func (w *Workbook) AppendPerson(rec records.Person) error {
	return w.append(PersonSheet, &rec)
}

func (w *Workbook) append(sheet string, rec records.Record) error {
	row := w.next[sheet]
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return errors.WrapResource("append", "row", sheet, err)
	}
	values := rec.Values()
	if err := w.file.SetSheetRow(sheet, cell, &values); err != nil {
		return errors.WrapResource("append", "row", sheet+"!"+cell, err)
	}
	w.next[sheet] = row + 1
	return nil
}

// Rows returns the number of data rows written to sheet.
func (w *Workbook) Rows(sheet string) int {
	if n, ok := w.next[sheet]; ok {
		return n - 2
	}
	return 0
}

// Save writes the workbook to path. The file is written next to path first
// and renamed into place, so a failed save never leaves a partial file.
func (w *Workbook) Save(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".bankrot-*.xlsx")
	if err != nil {
		return errors.WrapIO("create", dir, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if err := w.file.Write(tmp); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.WrapIO("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.WrapIO("close", tmpName, err)
	}
	if err := os.Chmod(tmpName, constants.FilePermissions); err != nil {
		cleanup()
		return errors.WrapIO("chmod", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return errors.WrapIO("rename", path, err)
	}
	return nil
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// DefaultFileName returns the output name for a run started at t.
func DefaultFileName(t time.Time) string {
	return constants.OutputFilePrefix + strconv.FormatInt(t.UnixMilli(), 10) + ".xlsx"
}
