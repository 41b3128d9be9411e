package calculator

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/vereinskasse/internal/models"
)

// DateLayout is the calendar day key used by DailySales.Date.
const DateLayout = "2006-01-02"

// DateKey returns the calendar day of t in loc.
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}

// GroupByDay groups receipts by the calendar day they were completed on.
//
// Algorithm:
// - Day boundary is midnight in loc
// - Receipts keep their input (ledger) order inside a day
// - Per day: total = Σ receipt totals, itemCount = Σ quantities
// - Days are sorted by date, most recent first
func GroupByDay(receipts []models.CompletedReceipt, loc *time.Location) []models.DailySales {
	byDate := make(map[string]*models.DailySales)
	var order []string

	for _, receipt := range receipts {
		key := DateKey(receipt.CompletedAt, loc)
		day, exists := byDate[key]
		if !exists {
			day = &models.DailySales{Date: key, Total: decimal.Zero}
			byDate[key] = day
			order = append(order, key)
		}
		day.Receipts = append(day.Receipts, receipt)
		day.Total = day.Total.Add(receipt.Total)
		day.ItemCount += receipt.ItemCount()
	}

	// yyyy-MM-dd sorts lexically in date order
	sort.Slice(order, func(i, j int) bool { return order[i] > order[j] })

	days := make([]models.DailySales, 0, len(order))
	for _, key := range order {
		days = append(days, *byDate[key])
	}
	return days
}

// Day aggregates the receipts completed on the calendar day date (yyyy-MM-dd).
// A day without receipts yields a zero DailySales with an empty receipt list.
func Day(receipts []models.CompletedReceipt, date string, loc *time.Location) models.DailySales {
	day := models.DailySales{
		Date:     date,
		Receipts: []models.CompletedReceipt{},
		Total:    decimal.Zero,
	}
	for _, receipt := range receipts {
		if DateKey(receipt.CompletedAt, loc) != date {
			continue
		}
		day.Receipts = append(day.Receipts, receipt)
		day.Total = day.Total.Add(receipt.Total)
		day.ItemCount += receipt.ItemCount()
	}
	return day
}

// Summarize computes totals across days.
func Summarize(days []models.DailySales) models.SalesSummary {
	summary := models.SalesSummary{Days: len(days), Total: decimal.Zero}
	for _, day := range days {
		summary.Receipts += len(day.Receipts)
		summary.ItemCount += day.ItemCount
		summary.Total = summary.Total.Add(day.Total)
	}
	return summary
}
