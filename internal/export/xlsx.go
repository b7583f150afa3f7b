package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"spendview/internal/core"
)

const xlsxSheet = "Receipts"

var xlsxHeaders = []string{"Date", "Vendor", "Amount", "Category", "File", "Confidence"}

// XLSX renders the record set as an Excel workbook with a single "Receipts"
// sheet carrying the same columns as the CSV export.
func XLSX(recs []core.Receipt) ([]byte, error) {
	if len(recs) == 0 {
		return nil, ErrNoReceipts
	}

	f := excelize.NewFile()
	defer f.Close()

	if index, _ := f.GetSheetIndex(xlsxSheet); index == -1 {
		if _, err := f.NewSheet(xlsxSheet); err != nil {
			return nil, fmt.Errorf("create sheet: %w", err)
		}
	}
	activeIndex, _ := f.GetSheetIndex(xlsxSheet)
	f.SetActiveSheet(activeIndex)
	// drop the default sheet so the workbook only carries receipts
	_ = f.DeleteSheet("Sheet1")

	for i, h := range xlsxHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(xlsxSheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for row, r := range recs {
		values := []interface{}{
			r.Date.String(),
			r.Vendor,
			r.Amount.Float(),
			string(r.Category),
			r.FileName,
			r.Confidence,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(xlsxSheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
