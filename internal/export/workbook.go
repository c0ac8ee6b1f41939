// Package export writes the merged run tables into a single XLSX workbook,
// one worksheet per table.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"pdfmatch/internal/aggregate"
)

// Worksheet names, in workbook order.
const (
	SheetMatched      = "Matched"
	SheetUnmatched    = "Unmatched"
	SheetMultiMatched = "Multi Matched"
)

const columnWidth = 24

// WriteWorkbook saves the three tables of r to path. Every sheet is present
// even when its table is empty, so consumers can rely on the layout.
func WriteWorkbook(path string, r aggregate.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create workbook directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	sheets := []struct {
		name  string
		table aggregate.Table
	}{
		{SheetMatched, r.Matched},
		{SheetUnmatched, r.Unmatched},
		{SheetMultiMatched, r.MultiMatched},
	}
	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			return fmt.Errorf("create sheet %q: %w", sheet.name, err)
		}
		if err := writeSheet(f, sheet.name, sheet.table, headerStyle); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, table aggregate.Table, headerStyle int) error {
	if len(table.Headers) == 0 {
		return nil
	}
	header := make([]any, len(table.Headers))
	for i, h := range table.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(table.Headers))
	if err != nil {
		return fmt.Errorf("resolve %s columns: %w", sheet, err)
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}
	if err := f.SetColWidth(sheet, "A", lastCol, columnWidth); err != nil {
		return fmt.Errorf("size %s columns: %w", sheet, err)
	}

	for i, row := range table.Rows {
		values := row.Values(table.Headers)
		cells := make([]any, len(values))
		for j, v := range values {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("resolve %s row %d: %w", sheet, i, err)
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i, err)
		}
	}
	return nil
}
