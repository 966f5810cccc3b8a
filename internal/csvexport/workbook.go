package csvexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"carprice/internal/domain"
)

// SheetName is the worksheet holding exported predictions.
const SheetName = "Predictions"

// WriteWorkbook writes predictions as an XLSX workbook with the same two
// columns as the CSV export. Prices are stored as rounded numbers with a
// thousands-separator format.
func WriteWorkbook(out io.Writer, preds []domain.PredictionResult) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	priceStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		return fmt.Errorf("price style: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &[]interface{}{columns[0], columns[1]}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "B1", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i := range preds {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{i + 1, domain.RoundPrice(preds[i].PredictedPrice)}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if len(preds) > 0 {
		last := fmt.Sprintf("B%d", len(preds)+1)
		if err := f.SetCellStyle(SheetName, "B2", last, priceStyle); err != nil {
			return fmt.Errorf("style prices: %w", err)
		}
	}
	if err := f.SetColWidth(SheetName, "A", "B", 18); err != nil {
		return fmt.Errorf("column width: %w", err)
	}

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
