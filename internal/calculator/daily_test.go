package calculator

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/vereinskasse/internal/models"
)

func TestGroupByDay(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	beer := models.ReceiptItem{Product: product("bier", "3.50"), Quantity: 2}
	pretzel := models.ReceiptItem{Product: product("breze", "1.50"), Quantity: 1}

	tests := []struct {
		name         string
		receipts     []models.CompletedReceipt
		validateFunc func(t *testing.T, days []models.DailySales)
	}{
		{
			name:     "no receipts",
			receipts: nil,
			validateFunc: func(t *testing.T, days []models.DailySales) {
				if len(days) != 0 {
					t.Errorf("expected no days, got %d", len(days))
				}
			},
		},
		{
			name: "two days, later date first",
			receipts: []models.CompletedReceipt{
				receipt("r1", time.Date(2026, 10, 16, 18, 0, 0, 0, loc), beer),
				receipt("r2", time.Date(2026, 10, 17, 9, 30, 0, 0, loc), pretzel),
				receipt("r3", time.Date(2026, 10, 16, 19, 0, 0, 0, loc), beer, pretzel),
			},
			validateFunc: func(t *testing.T, days []models.DailySales) {
				if len(days) != 2 {
					t.Fatalf("expected 2 days, got %d", len(days))
				}
				if days[0].Date != "2026-10-17" || days[1].Date != "2026-10-16" {
					t.Errorf("order = [%s %s], want [2026-10-17 2026-10-16]", days[0].Date, days[1].Date)
				}
				for _, day := range days {
					sum := decimal.Zero
					for _, r := range day.Receipts {
						sum = sum.Add(r.Total)
					}
					if !day.Total.Equal(sum) {
						t.Errorf("%s total = %s, want %s", day.Date, day.Total, sum)
					}
				}
				// 16th: 7.00 + 8.50
				if !days[1].Total.Equal(decimal.RequireFromString("15.50")) {
					t.Errorf("2026-10-16 total = %s, want 15.50", days[1].Total)
				}
				if days[1].ItemCount != 5 {
					t.Errorf("2026-10-16 item count = %d, want 5", days[1].ItemCount)
				}
				if days[1].Receipts[0].ID != "r1" || days[1].Receipts[1].ID != "r3" {
					t.Errorf("receipts within a day must keep ledger order")
				}
			},
		},
		{
			name: "day boundary is midnight in the given location",
			receipts: []models.CompletedReceipt{
				// 23:30 UTC on the 16th is 00:30 CET on the 17th
				receipt("late", time.Date(2026, 10, 16, 23, 30, 0, 0, time.UTC), beer),
				receipt("early", time.Date(2026, 10, 17, 8, 0, 0, 0, loc), beer),
			},
			validateFunc: func(t *testing.T, days []models.DailySales) {
				if len(days) != 1 {
					t.Fatalf("expected 1 day, got %d", len(days))
				}
				if days[0].Date != "2026-10-17" {
					t.Errorf("date = %s, want 2026-10-17", days[0].Date)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validateFunc(t, GroupByDay(tt.receipts, loc))
		})
	}
}

func TestDay(t *testing.T) {
	beer := models.ReceiptItem{Product: product("bier", "3.50"), Quantity: 1}
	receipts := []models.CompletedReceipt{
		receipt("r1", time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC), beer),
	}

	t.Run("day without receipts is zero, not nil", func(t *testing.T) {
		day := Day(receipts, "2026-10-17", time.UTC)
		if !day.Total.IsZero() || day.ItemCount != 0 {
			t.Errorf("expected zero totals, got total=%s items=%d", day.Total, day.ItemCount)
		}
		if day.Receipts == nil || len(day.Receipts) != 0 {
			t.Errorf("expected empty receipt list, got %v", day.Receipts)
		}
	})

	t.Run("matching day", func(t *testing.T) {
		day := Day(receipts, "2026-10-16", time.UTC)
		if len(day.Receipts) != 1 || day.ItemCount != 1 {
			t.Errorf("expected one receipt with one item, got %d/%d", len(day.Receipts), day.ItemCount)
		}
	})
}

func TestSummarize(t *testing.T) {
	days := []models.DailySales{
		{Date: "2026-10-17", Receipts: make([]models.CompletedReceipt, 2), Total: decimal.RequireFromString("12.50"), ItemCount: 4},
		{Date: "2026-10-16", Receipts: make([]models.CompletedReceipt, 1), Total: decimal.RequireFromString("3.50"), ItemCount: 1},
	}

	summary := Summarize(days)
	if summary.Days != 2 || summary.Receipts != 3 || summary.ItemCount != 5 {
		t.Errorf("unexpected summary counts: %+v", summary)
	}
	if !summary.Total.Equal(decimal.RequireFromString("16.00")) {
		t.Errorf("total = %s, want 16.00", summary.Total)
	}
}
