package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/mmynk/vereinskasse/internal/calculator"
	"github.com/mmynk/vereinskasse/internal/models"
)

// SheetName is the worksheet holding the sales rows.
const SheetName = "Verkäufe"

// WriteXLSX writes the same rows as WriteCSV into an Excel workbook.
// Quantities and amounts are stored as numbers.
func WriteXLSX(w io.Writer, days []models.DailySales, opts Options) error {
	opts = opts.withDefaults()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	moneyFmt := "#,##0.00"
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	if err := f.SetColStyle(SheetName, "F:G", moneyStyle); err != nil {
		return fmt.Errorf("failed to style amounts: %w", err)
	}
	if err := setRow(f, 1, headerValues()); err != nil {
		return err
	}
	if err := f.SetRowStyle(SheetName, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	line := 2
	for _, r := range rows(days, opts.Location) {
		values := []any{r.date, r.time, r.number, r.article, r.qty, r.price.InexactFloat64(), r.sum.InexactFloat64()}
		if err := setRow(f, line, values); err != nil {
			return err
		}
		line++
	}

	summary := calculator.Summarize(days)
	line++
	if err := setRow(f, line, []any{summaryLabel, nil, nil, nil, summary.ItemCount, nil, summary.Total.InexactFloat64()}); err != nil {
		return err
	}
	if err := f.SetRowStyle(SheetName, line, line, headerStyle); err != nil {
		return fmt.Errorf("failed to style summary: %w", err)
	}

	if err := f.SetColWidth(SheetName, "D", "D", 28); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func headerValues() []any {
	values := make([]any, len(header))
	for i, h := range header {
		values[i] = h
	}
	return values
}

func setRow(f *excelize.File, line int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, line)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", line, err)
	}
	return nil
}
