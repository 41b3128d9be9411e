package models

import "github.com/shopspring/decimal"

// DailySales aggregates the receipts of one calendar day.
// It is derived from the ledger on demand and never stored.
type DailySales struct {
	// Date is the calendar day key in yyyy-MM-dd format.
	Date string `json:"date"`

	// Receipts are the receipts completed on Date, in ledger order.
	Receipts []CompletedReceipt `json:"receipts"`

	// Total is the sum of the receipt totals.
	Total decimal.Decimal `json:"total"`

	// ItemCount is the number of units sold that day.
	ItemCount int `json:"itemCount"`
}

// SalesSummary holds totals across several days.
type SalesSummary struct {
	Days      int             `json:"days"`
	Receipts  int             `json:"receipts"`
	ItemCount int             `json:"itemCount"`
	Total     decimal.Decimal `json:"total"`
}
