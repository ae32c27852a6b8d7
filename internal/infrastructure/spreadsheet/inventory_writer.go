// Package spreadsheet writes the full inventory workbook.
package spreadsheet

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/orderpad/backend/internal/domain/ordering"
)

// XLSXContentType is the MIME type of generated workbooks
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// FullInventorySheet is the name of the only worksheet in the workbook
const FullInventorySheet = "Full Inventory"

var fullInventoryHeaders = []string{"Item", "Current Inventory", "To Order"}

// FullInventoryWriter builds the full inventory workbook
type FullInventoryWriter struct {
	colWidths []float64
}

// NewFullInventoryWriter creates a workbook writer
func NewFullInventoryWriter() *FullInventoryWriter {
	return &FullInventoryWriter{colWidths: []float64{32, 18, 12}}
}

// Write renders one row per item under a bold header row and returns the xlsx bytes
func (w *FullInventoryWriter) Write(rows []ordering.InventoryRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", FullInventorySheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, h := range fullInventoryHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(FullInventorySheet, cell, h); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(FullInventorySheet, "A1", "C1", headerStyle); err != nil {
		return nil, err
	}

	for i, row := range rows {
		r := i + 2
		if err := f.SetCellStr(FullInventorySheet, fmt.Sprintf("A%d", r), row.Item); err != nil {
			return nil, err
		}
		if err := setEntryCell(f, fmt.Sprintf("B%d", r), row.CurrentInventory); err != nil {
			return nil, err
		}
		if err := setEntryCell(f, fmt.Sprintf("C%d", r), row.ToOrder); err != nil {
			return nil, err
		}
	}

	for i, width := range w.colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(FullInventorySheet, col, col, width); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// setEntryCell writes numbers as numeric cells and anything else as text.
// Empty entries leave the cell blank.
func setEntryCell(f *excelize.File, cell string, e ordering.Entry) error {
	if e.IsEmpty() {
		return nil
	}
	if n, ok := e.Number(); ok {
		if n.IsInteger() {
			return f.SetCellValue(FullInventorySheet, cell, n.IntPart())
		}
		v, _ := n.Float64()
		return f.SetCellValue(FullInventorySheet, cell, v)
	}
	return f.SetCellStr(FullInventorySheet, cell, e.String())
}
