package export

import (
	"fmt"
	"os"
	"path/filepath"

	"card-ledger/feature/prices"

	"github.com/xuri/excelize/v2"
)

// ReviewSheet is the sheet holding rows that need a manual check.
const ReviewSheet = "Review"

// WriteReviewWorkbook writes rows into an xlsx file with a bold, frozen,
// filterable header. Prices are written as numbers.
func WriteReviewWorkbook(path string, rows []prices.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ReviewSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(prices.Header))
	for i, h := range prices.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(ReviewSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := reviewValues(r)
		if err := f.SetSheetRow(ReviewSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	last, err := excelize.CoordinatesToCellName(len(prices.Header), 1)
	if err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(ReviewSheet, "A1", last, bold); err != nil {
		return err
	}
	if err := f.SetPanes(ReviewSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	bottom, err := excelize.CoordinatesToCellName(len(prices.Header), len(rows)+1)
	if err != nil {
		return err
	}
	if err := f.AutoFilter(ReviewSheet, "A1:"+bottom, nil); err != nil {
		return fmt.Errorf("set filter: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// reviewValues mirrors Row.Record but keeps prices numeric.
func reviewValues(r prices.Row) []any {
	record := r.Record()
	values := make([]any, len(record))
	for i, v := range record {
		values[i] = v
	}
	if r.SellPrice != nil {
		values[4] = *r.SellPrice
	}
	if r.BuyPrice != nil {
		values[5] = *r.BuyPrice
	}
	return values
}
