package testutil

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// StatementSheet describes one sheet of a generated workbook. Rows[0] is the
// header row.
type StatementSheet struct {
	Name string
	Rows [][]any
}

// WriteWorkbook saves the sheets into dir/name and returns the path. The
// first sheet replaces the default sheet of a new workbook.
func WriteWorkbook(t *testing.T, dir, name string, sheets ...StatementSheet) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			t.Fatalf("create sheet %q: %v", sheet.Name, err)
		}

		for r, row := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			values := row
			if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
				t.Fatalf("write row %d of %q: %v", r+1, sheet.Name, err)
			}
		}
	}

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

// DREMonths are the month labels of a management DRE sheet.
var DREMonths = []string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// DRESheet builds a DRE sheet named sheet with the Variaveis index column,
// the given months and a trailing running-total column. lines maps each
// line label to one value per month, in the order of labels.
func DRESheet(sheet string, months []string, labels []string, lines map[string][]any) StatementSheet {
	header := []any{"Variaveis"}
	for _, m := range months {
		header = append(header, m)
	}
	header = append(header, "Total")

	rows := [][]any{header}
	for _, label := range labels {
		row := []any{label}
		row = append(row, lines[label]...)
		rows = append(rows, row)
	}
	return StatementSheet{Name: sheet, Rows: rows}
}
