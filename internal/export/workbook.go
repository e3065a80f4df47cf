package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/afmlabs/evaldash/internal/metrics"
)

const defaultSheet = "Sheet1"

// WriteWorkbook writes one sheet per dataset of snap.
func WriteWorkbook(w io.Writer, snap *metrics.Snapshot) error {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx: header style: %w", err)
	}

	for i, t := range Tables(snap) {
		idx, err := f.NewSheet(t.Name)
		if err != nil {
			return fmt.Errorf("xlsx: sheet %s: %w", t.Name, err)
		}
		if i == 0 {
			f.SetActiveSheet(idx)
		}
		if err := writeSheet(f, t, header); err != nil {
			return err
		}
	}

	if err := f.DeleteSheet(defaultSheet); err != nil {
		return fmt.Errorf("xlsx: drop default sheet: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx: write: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, t Table, headerStyle int) error {
	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(t.Name, "A1", &header); err != nil {
		return fmt.Errorf("xlsx: %s header: %w", t.Name, err)
	}
	last, err := excelize.CoordinatesToCellName(len(t.Header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(t.Name, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("xlsx: %s header style: %w", t.Name, err)
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(t.Name, cell, &row); err != nil {
			return fmt.Errorf("xlsx: %s row %d: %w", t.Name, i+1, err)
		}
	}
	return nil
}
