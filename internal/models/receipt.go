package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptItem is one line of a cart or a completed receipt.
// Quantity is always >= 1; a line that would drop to zero is removed.
type ReceiptItem struct {
	// Product is a snapshot of the catalog entry at the time it was rung up.
	Product Product `json:"product"`

	// Quantity is the number of units sold.
	Quantity int `json:"quantity"`
}

// LineTotal returns price × quantity.
func (i ReceiptItem) LineTotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CompletedReceipt represents a finished sale stored in the ledger.
type CompletedReceipt struct {
	// ID is the unique identifier of the receipt (UUID format).
	ID string `json:"id"`

	// Items are the receipt lines in the order they were added.
	Items []ReceiptItem `json:"items"`

	// Total is the sum of all line totals, fixed at completion time.
	Total decimal.Decimal `json:"total"`

	// CompletedAt is when the sale was completed.
	// Persisted as ISO-8601 text.
	CompletedAt time.Time `json:"completedAt"`
}

// ItemCount returns the number of units across all lines.
func (r CompletedReceipt) ItemCount() int {
	n := 0
	for _, item := range r.Items {
		n += item.Quantity
	}
	return n
}
