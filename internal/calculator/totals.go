// Package calculator holds the pure aggregation logic behind the cart and
// the sales overview. Nothing in here touches storage or the clock.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/vereinskasse/internal/models"
)

// ReceiptTotal computes Σ price × quantity over items.
func ReceiptTotal(items []models.ReceiptItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// ItemCount computes the number of units over items.
func ItemCount(items []models.ReceiptItem) int {
	n := 0
	for _, item := range items {
		n += item.Quantity
	}
	return n
}
