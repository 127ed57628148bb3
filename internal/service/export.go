package service

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Sheet1"

// WriteXLSX streams t as a single-sheet workbook: a header row, then one row per record
// holding the same formatted text shown on screen.
func WriteXLSX(w io.Writer, sheetName string, t *Table) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
	}()

	sheet := exportSheet
	if sheetName != "" && sheetName != exportSheet {
		if renameErr := f.SetSheetName(exportSheet, sheetName); renameErr != nil {
			return fmt.Errorf("rename sheet: %w", renameErr)
		}
		sheet = sheetName
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}

	header := make([]any, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range t.Rows {
		values := make([]any, len(row))
		for j, c := range row {
			values[j] = c.Text
		}
		cell, cellErr := excelize.CoordinatesToCellName(1, i+2)
		if cellErr != nil {
			return cellErr
		}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
