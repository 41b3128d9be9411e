// Package cart implements the receipt builder: the in-progress sale.
// The cart is transient and never persisted.
package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mmynk/vereinskasse/internal/calculator"
	"github.com/mmynk/vereinskasse/internal/models"
)

// ReceiptSink turns finished cart lines into a completed receipt.
// The ledger implements it.
type ReceiptSink interface {
	AddReceipt(ctx context.Context, items []models.ReceiptItem) models.CompletedReceipt
}

// MaxQuantity caps a single line. Larger deltas saturate here.
const MaxQuantity = 9999

// State is a consistent view of the cart taken under one lock.
type State struct {
	Items     []models.ReceiptItem
	Total     decimal.Decimal
	ItemCount int
}

// Cart is an ordered list of receipt lines with at most one line per product id.
type Cart struct {
	mu    sync.Mutex
	items []models.ReceiptItem
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddProduct increments the line for p, or appends a new line with quantity 1.
func (c *Cart) AddProduct(p models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(p.ID); i >= 0 {
		c.items[i].Quantity = addQuantity(c.items[i].Quantity, 1)
		return
	}
	c.items = append(c.items, models.ReceiptItem{Product: p, Quantity: 1})
}

// UpdateQuantity adds delta to the line of productID.
// A resulting quantity <= 0 removes the line and a quantity above
// MaxQuantity is clamped to it. Unknown ids are ignored.
func (c *Cart) UpdateQuantity(productID string, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(productID)
	if i < 0 {
		return
	}
	quantity := addQuantity(c.items[i].Quantity, delta)
	if quantity <= 0 {
		c.removeAt(i)
		return
	}
	c.items[i].Quantity = quantity
}

// RemoveItem drops the line of productID if present.
func (c *Cart) RemoveItem(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(productID); i >= 0 {
		c.removeAt(i)
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Items returns a copy of the cart lines in insertion order.
func (c *Cart) Items() []models.ReceiptItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// State returns items, total and unit count from the same moment.
func (c *Cart) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Items:     c.snapshot(),
		Total:     calculator.ReceiptTotal(c.items),
		ItemCount: calculator.ItemCount(c.items),
	}
}

// Total returns Σ price × quantity of the current lines.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return calculator.ReceiptTotal(c.items)
}

// ItemCount returns the number of units in the cart.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return calculator.ItemCount(c.items)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}

// Complete finalizes the sale.
// An empty cart is a no-op and reports false. Otherwise the lines are
// snapshotted, handed to sink and the cart is cleared.
func (c *Cart) Complete(ctx context.Context, sink ReceiptSink) (models.CompletedReceipt, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) == 0 {
		return models.CompletedReceipt{}, false
	}

	receipt := sink.AddReceipt(ctx, c.snapshot())
	c.items = nil
	return receipt, true
}

// snapshot copies the lines. Product is a value type, so the copy is
// decoupled from later catalog edits. Must be called with c.mu held.
func (c *Cart) snapshot() []models.ReceiptItem {
	return append([]models.ReceiptItem(nil), c.items...)
}

// addQuantity adds delta to a positive quantity without wrapping.
// The result is at most MaxQuantity; anything <= 0 means "remove".
func addQuantity(quantity, delta int) int {
	if delta >= MaxQuantity-quantity {
		return MaxQuantity
	}
	if delta <= -quantity {
		return 0
	}
	return quantity + delta
}

func (c *Cart) indexOf(productID string) int {
	for i, item := range c.items {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	c.items = append(c.items[:i:i], c.items[i+1:]...)
}
