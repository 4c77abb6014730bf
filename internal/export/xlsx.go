// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/bibflow/pkg/types"
)

// WriteXLSX writes the review sheet as an XLSX workbook at path, with the
// same columns and line-break collapsing as WriteCSV.
func WriteXLSX(path string, records []types.CanonicalRecord) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	if err := setRow(f, sheet, 1, Header); err != nil {
		return err
	}
	for i, r := range records {
		if err := setRow(f, sheet, i+2, Row(r)); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("cell name for row %d: %w", row, err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("setting %s: %w", cell, err)
		}
	}
	return nil
}
