package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/mmynk/vereinskasse/internal/calculator"
	"github.com/mmynk/vereinskasse/internal/models"
)

// WriteCSV writes days as a semicolon separated UTF-8 file with BOM, one
// line per receipt item, followed by a blank line and the overall totals.
func WriteCSV(w io.Writer, days []models.DailySales, opts Options) error {
	opts = opts.withDefaults()
	sep := decimalSeparator(opts.Locale)
	amount := func(d decimal.Decimal) string {
		return strings.Replace(d.StringFixed(2), ".", sep, 1)
	}

	bom := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	cw := csv.NewWriter(bom)
	cw.Comma = ';'

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range rows(days, opts.Location) {
		record := []string{
			r.date,
			r.time,
			strconv.Itoa(r.number),
			r.article,
			strconv.Itoa(r.qty),
			amount(r.price),
			amount(r.sum),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	summary := calculator.Summarize(days)
	if err := cw.Write(nil); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if err := cw.Write([]string{summaryLabel, "", "", "", strconv.Itoa(summary.ItemCount), "", amount(summary.Total)}); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return bom.Close()
}
