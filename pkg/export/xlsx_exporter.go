package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// XLSXExporter renders datasets into a single-sheet workbook.
type XLSXExporter struct {
	sheet string
}

// NewXLSXExporter constructs an XLSX exporter writing to the named sheet.
func NewXLSXExporter(sheet string) *XLSXExporter {
	if sheet == "" {
		sheet = defaultSheet
	}
	return &XLSXExporter{sheet: sheet}
}

// ContentType implements Renderer.
func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension implements Renderer.
func (e *XLSXExporter) Extension() string { return "xlsx" }

// Render writes headers on row 1, the table below it and footer lines after
// one empty row.
func (e *XLSXExporter) Render(data Dataset) ([]byte, error) {
	if err := requireHeaders("xlsx", data); err != nil {
		return nil, err
	}
	f := excelize.NewFile()
	defer f.Close()

	if e.sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, e.sheet); err != nil {
			return nil, fmt.Errorf("rename xlsx sheet: %w", err)
		}
	}

	for i, header := range data.Headers {
		if err := e.setCell(f, i+1, 1, header); err != nil {
			return nil, err
		}
	}
	for r, row := range data.Rows {
		for c, header := range data.Headers {
			if err := e.setCell(f, c+1, r+2, row[header]); err != nil {
				return nil, err
			}
		}
	}
	next := len(data.Rows) + 3
	for i, line := range data.Footer {
		if err := e.setCell(f, 1, next+i, line); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *XLSXExporter) setCell(f *excelize.File, col, row int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("xlsx cell %d,%d: %w", col, row, err)
	}
	if err := f.SetCellValue(e.sheet, cell, value); err != nil {
		return fmt.Errorf("set xlsx cell %s: %w", cell, err)
	}
	return nil
}
