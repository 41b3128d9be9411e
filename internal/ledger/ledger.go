// Package ledger implements the append-only sales history.
package ledger

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/vereinskasse/internal/calculator"
	"github.com/mmynk/vereinskasse/internal/models"
	"github.com/mmynk/vereinskasse/internal/storage"
)

// Ledger owns all completed receipts until they are explicitly cleared.
// Every mutation rewrites the whole collection; write failures are logged
// and never returned.
type Ledger struct {
	mu         sync.RWMutex
	receipts   []models.CompletedReceipt
	collection *storage.Collection[[]models.CompletedReceipt]
	now        func() time.Time
	loc        *time.Location
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the clock used for completion timestamps and "today".
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithLocation sets the timezone whose midnight separates calendar days.
func WithLocation(loc *time.Location) Option {
	return func(l *Ledger) {
		if loc != nil {
			l.loc = loc
		}
	}
}

// New loads the ledger from store.
// A missing or unreadable collection is logged and the ledger starts empty.
func New(ctx context.Context, store storage.Store, opts ...Option) *Ledger {
	l := &Ledger{
		collection: storage.NewCollection[[]models.CompletedReceipt](store, storage.ReceiptsKey),
		now:        time.Now,
		loc:        time.Local,
	}
	for _, opt := range opts {
		opt(l)
	}

	receipts, err := l.collection.Load(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		receipts = nil
	case err != nil:
		slog.Error("Failed to parse stored receipts", "error", err)
		receipts = nil
	}

	l.receipts = receipts
	slog.Info("Ledger loaded", "receipts", len(l.receipts))
	return l
}

// Location returns the timezone used for day grouping.
func (l *Ledger) Location() *time.Location {
	return l.loc
}

// Now returns the ledger clock's current time in its location.
func (l *Ledger) Now() time.Time {
	return l.now().In(l.loc)
}

// AddReceipt creates a completed receipt from items and appends it.
// The total is fixed here; the receipt gets a fresh UUID and the current time.
func (l *Ledger) AddReceipt(ctx context.Context, items []models.ReceiptItem) models.CompletedReceipt {
	items = append([]models.ReceiptItem(nil), items...)
	receipt := models.CompletedReceipt{
		ID:          uuid.NewString(),
		Items:       items,
		Total:       calculator.ReceiptTotal(items),
		CompletedAt: l.now(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.receipts = append(l.receipts, receipt)
	l.persist(ctx)

	slog.Info("Receipt completed",
		"receipt_id", receipt.ID,
		"total", receipt.Total.StringFixed(2),
		"items", receipt.ItemCount(),
	)
	return receipt
}

// Receipts returns a copy of all receipts in ledger order.
func (l *Ledger) Receipts() []models.CompletedReceipt {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]models.CompletedReceipt(nil), l.receipts...)
}

// Find returns the receipt with the given id together with its 1-based
// number within its calendar day, as shown in the sales overview.
func (l *Ledger) Find(id string) (models.CompletedReceipt, int, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for i, receipt := range l.receipts {
		if receipt.ID != id {
			continue
		}
		day := calculator.DateKey(receipt.CompletedAt, l.loc)
		number := 0
		for _, earlier := range l.receipts[:i+1] {
			if calculator.DateKey(earlier.CompletedAt, l.loc) == day {
				number++
			}
		}
		return receipt, number, true
	}
	return models.CompletedReceipt{}, 0, false
}

// DailySales groups all receipts by calendar day, most recent day first.
func (l *Ledger) DailySales() []models.DailySales {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return calculator.GroupByDay(l.receipts, l.loc)
}

// TodaysSales aggregates the receipts of the current calendar day.
// It returns zero totals, not an error, when nothing was sold today.
func (l *Ledger) TodaysSales() models.DailySales {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return calculator.Day(l.receipts, calculator.DateKey(l.now(), l.loc), l.loc)
}

// TodaysReceipts returns the receipts of the current calendar day.
func (l *Ledger) TodaysReceipts() []models.CompletedReceipt {
	return l.TodaysSales().Receipts
}

// Summary returns totals across the whole ledger.
func (l *Ledger) Summary() models.SalesSummary {
	return calculator.Summarize(l.DailySales())
}

// ClearAll empties the ledger irreversibly and returns how many receipts
// were removed.
func (l *Ledger) ClearAll(ctx context.Context) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cleared := len(l.receipts)
	l.receipts = nil
	l.persist(ctx)
	slog.Warn("All receipts cleared", "count", cleared)
	return cleared
}

// persist must be called with l.mu held.
func (l *Ledger) persist(ctx context.Context) {
	receipts := l.receipts
	if receipts == nil {
		receipts = []models.CompletedReceipt{}
	}
	if err := l.collection.Save(ctx, receipts); err != nil {
		slog.Error("Failed to save receipts to storage", "error", err)
	}
}
