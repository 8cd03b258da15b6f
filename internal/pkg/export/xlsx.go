package export

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Table is a single worksheet: a bold header row followed by data rows.
type Table struct {
	Sheet   string
	Headers []string
	Rows    [][]interface{}
}

// XLSX renders the table into an in-memory workbook.
func XLSX(table Table) ([]byte, error) {
	if table.Sheet == "" {
		return nil, errors.New("export: sheet name is required")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), table.Sheet); err != nil {
		return nil, fmt.Errorf("export: rename sheet: %w", err)
	}

	header := make([]interface{}, len(table.Headers))
	for i, h := range table.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(table.Sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("export: write header: %w", err)
	}

	if len(table.Headers) > 0 {
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return nil, fmt.Errorf("export: header style: %w", err)
		}
		last, err := excelize.CoordinatesToCellName(len(table.Headers), 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(table.Sheet, "A1", last, bold); err != nil {
			return nil, fmt.Errorf("export: apply header style: %w", err)
		}
		lastCol, _, err := excelize.SplitCellName(last)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(table.Sheet, "A", lastCol, 20); err != nil {
			return nil, fmt.Errorf("export: column width: %w", err)
		}
	}

	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := row
		if err := f.SetSheetRow(table.Sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("export: write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
