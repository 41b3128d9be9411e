// Package printer renders receipts for thermal printers and browsers.
package printer

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/vereinskasse/internal/models"
)

const (
	footerThanks = "Vielen Dank für Ihren Einkauf!"
	footerStars  = "* * *"
)

// Receipt is the printable view of a sale. Lines and Total are taken from
// the source as-is, never recomputed from the current catalog.
type Receipt struct {
	ShopName string
	Time     time.Time
	// Number is the receipt number within its day; 0 prints no number.
	Number int
	Lines  []Line
	Total  decimal.Decimal
}

type Line struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// FromCompleted builds the view of a stored receipt, in loc.
func FromCompleted(shopName string, r models.CompletedReceipt, number int, loc *time.Location) Receipt {
	if loc == nil {
		loc = time.Local
	}
	return Receipt{
		ShopName: shopName,
		Time:     r.CompletedAt.In(loc),
		Number:   number,
		Lines:    lines(r.Items),
		Total:    r.Total,
	}
}

// FromCart builds the view of an open cart printed before checkout.
func FromCart(shopName string, items []models.ReceiptItem, total decimal.Decimal, now time.Time) Receipt {
	return Receipt{
		ShopName: shopName,
		Time:     now,
		Lines:    lines(items),
		Total:    total,
	}
}

func lines(items []models.ReceiptItem) []Line {
	out := make([]Line, 0, len(items))
	for _, item := range items {
		out = append(out, Line{
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.Product.Price,
			Total:     item.LineTotal(),
		})
	}
	return out
}

var (
	weekdays = [...]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"}
	months   = [...]string{"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"}
)

// LongDate formats t like "Samstag, 17. Oktober 2026".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%s, %d. %s %d", weekdays[t.Weekday()], t.Day(), months[t.Month()-1], t.Year())
}

// Clock formats t like "14:05 Uhr".
func Clock(t time.Time) string {
	return t.Format("15:04") + " Uhr"
}

// Money formats d like "3,50 €".
func Money(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1) + " €"
}

// FormatESCPOS converts r into an ESC/POS byte stream for a printer with
// width characters per line.
func FormatESCPOS(r Receipt, width int) []byte {
	doc := NewDocument(width)

	doc.SetAlign(AlignCenter).
		SetBold(true).
		SetFontSize(FontDouble).
		Text(r.ShopName).
		SetFontSize(FontNormal).
		SetBold(false).
		Text(LongDate(r.Time)).
		Text(Clock(r.Time))
	if r.Number > 0 {
		doc.TextF("Beleg #%d", r.Number)
	}

	doc.SetAlign(AlignLeft).
		Separator('-').
		KeyValue("Artikel", "Menge     Summe").
		Separator('-')

	for _, line := range r.Lines {
		doc.ItemLine(line.Name, line.Quantity, Money(line.Total))
		if line.Quantity > 1 {
			doc.TextF("  à %s", Money(line.UnitPrice))
		}
	}

	doc.Separator('=').
		SetBold(true).
		SetFontSize(FontTall).
		KeyValue("GESAMT", Money(r.Total)).
		SetFontSize(FontNormal).
		SetBold(false).
		Separator('=')

	doc.SetAlign(AlignCenter).
		LineFeed().
		Text(footerThanks).
		Text(footerStars).
		SetAlign(AlignLeft)

	doc.FeedLines(4).
		PartialCut()

	return doc.Bytes()
}
