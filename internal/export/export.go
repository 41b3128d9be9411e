// Package export writes the sales history as CSV or XLSX.
package export

import (
	"fmt"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/mmynk/vereinskasse/internal/models"
)

var header = []string{"Datum", "Uhrzeit", "Beleg-Nr.", "Artikel", "Menge", "Einzelpreis", "Summe"}

const summaryLabel = "Gesamt"

type Options struct {
	// Location is the timezone dates and times are rendered in.
	Location *time.Location
	// Locale selects the decimal separator.
	Locale language.Tag
}

// DefaultOptions renders local time with German number formatting.
func DefaultOptions() Options {
	return Options{Location: time.Local, Locale: language.German}
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Locale == language.Und {
		o.Locale = language.German
	}
	return o
}

// Filename returns the download name for an export created at now.
func Filename(now time.Time, ext string) string {
	return fmt.Sprintf("verkaufsstatistik_%s.%s", now.Format("2006-01-02_15-04"), ext)
}

type row struct {
	date    string
	time    string
	number  int
	article string
	qty     int
	price   decimal.Decimal
	sum     decimal.Decimal
}

// rows flattens days into one row per receipt item. Days keep their given
// order; receipt numbers restart at 1 for each day.
func rows(days []models.DailySales, loc *time.Location) []row {
	var out []row
	for _, day := range days {
		for i, receipt := range day.Receipts {
			at := receipt.CompletedAt.In(loc)
			for _, item := range receipt.Items {
				out = append(out, row{
					date:    at.Format("02.01.2006"),
					time:    at.Format("15:04"),
					number:  i + 1,
					article: item.Product.Name,
					qty:     item.Quantity,
					price:   item.Product.Price,
					sum:     item.LineTotal(),
				})
			}
		}
	}
	return out
}

// decimalSeparator asks the locale how it writes one and a half.
func decimalSeparator(tag language.Tag) string {
	formatted := message.NewPrinter(tag).Sprint(number.Decimal(1.5, number.Scale(1)))
	for _, r := range formatted {
		if !unicode.IsDigit(r) {
			return string(r)
		}
	}
	return "."
}
