package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/vereinskasse/internal/cart"
	"github.com/mmynk/vereinskasse/internal/catalog"
	"github.com/mmynk/vereinskasse/internal/models"
	"github.com/mmynk/vereinskasse/internal/storage"
	"github.com/mmynk/vereinskasse/internal/storage/sqlite"
)

var _ cart.ReceiptSink = (*Ledger)(nil)

var berlin = time.FixedZone("CEST", 2*3600)

// fakeClock returns a settable time.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func item(id, price string, qty int) models.ReceiptItem {
	return models.ReceiptItem{
		Product:  models.Product{ID: id, Name: id, Price: decimal.RequireFromString(price), Category: models.CategoryDrinks},
		Quantity: qty,
	}
}

func TestAddReceipt(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 10, 17, 14, 5, 0, 0, berlin)}
	l := New(ctx, newTestStore(t), WithClock(clock.Now), WithLocation(berlin))

	first := l.AddReceipt(ctx, []models.ReceiptItem{item("A", "3.50", 2), item("B", "2.00", 1)})
	assert.True(t, first.Total.Equal(decimal.RequireFromString("9.00")), "total = %s", first.Total)
	assert.NotEmpty(t, first.ID)
	assert.True(t, first.CompletedAt.Equal(clock.t))

	second := l.AddReceipt(ctx, []models.ReceiptItem{item("A", "3.50", 1)})
	assert.NotEqual(t, first.ID, second.ID)

	receipts := l.Receipts()
	require.Len(t, receipts, 2)
	assert.Equal(t, first.ID, receipts[0].ID, "existing receipts keep their position")
	assert.Equal(t, second.ID, receipts[1].ID)
}

func TestReceiptIsASnapshot(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	products := catalog.New(ctx, store)
	l := New(ctx, store)
	c := cart.New()

	beer, ok := products.Get("bier")
	require.True(t, ok)
	c.AddProduct(beer)
	c.AddProduct(beer)

	receipt, ok := c.Complete(ctx, l)
	require.True(t, ok)
	assert.True(t, c.IsEmpty())

	beer.Price = decimal.RequireFromString("9.90")
	beer.Name = "Craft Beer"
	products.Save(ctx, beer)
	products.Delete(ctx, "bier")

	stored := l.Receipts()[0]
	assert.Equal(t, receipt.ID, stored.ID)
	assert.True(t, stored.Total.Equal(decimal.RequireFromString("7.00")))
	assert.True(t, stored.Items[0].Product.Price.Equal(decimal.RequireFromString("3.50")))
	assert.Equal(t, "Bier", stored.Items[0].Product.Name)

	reloaded := New(ctx, store)
	assert.True(t, reloaded.Receipts()[0].Total.Equal(decimal.RequireFromString("7.00")))
}

func TestDailySales(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 10, 16, 20, 0, 0, 0, berlin)}
	l := New(ctx, newTestStore(t), WithClock(clock.Now), WithLocation(berlin))

	l.AddReceipt(ctx, []models.ReceiptItem{item("A", "3.50", 2)})
	l.AddReceipt(ctx, []models.ReceiptItem{item("B", "2.00", 3)})
	clock.t = time.Date(2026, 10, 17, 11, 0, 0, 0, berlin)
	l.AddReceipt(ctx, []models.ReceiptItem{item("C", "5.00", 1)})

	days := l.DailySales()
	require.Len(t, days, 2)
	assert.Equal(t, "2026-10-17", days[0].Date)
	assert.Equal(t, "2026-10-16", days[1].Date)

	for _, day := range days {
		sum := decimal.Zero
		for _, r := range day.Receipts {
			sum = sum.Add(r.Total)
		}
		assert.True(t, day.Total.Equal(sum), "%s: %s != %s", day.Date, day.Total, sum)
	}
	assert.Equal(t, 5, days[1].ItemCount)

	summary := l.Summary()
	assert.Equal(t, 3, summary.Receipts)
	assert.True(t, summary.Total.Equal(decimal.RequireFromString("18.00")))
}

func TestTodaysSales(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 10, 16, 20, 0, 0, 0, berlin)}
	l := New(ctx, newTestStore(t), WithClock(clock.Now), WithLocation(berlin))

	t.Run("empty ledger", func(t *testing.T) {
		today := l.TodaysSales()
		assert.Equal(t, "2026-10-16", today.Date)
		assert.True(t, today.Total.IsZero())
		assert.Equal(t, 0, today.ItemCount)
		assert.NotNil(t, today.Receipts)
		assert.Empty(t, today.Receipts)
	})

	t.Run("yesterday's receipts are not today's", func(t *testing.T) {
		l.AddReceipt(ctx, []models.ReceiptItem{item("A", "3.50", 1)})
		clock.t = clock.t.Add(6 * time.Hour)

		today := l.TodaysSales()
		assert.Equal(t, "2026-10-17", today.Date)
		assert.True(t, today.Total.IsZero())
		assert.Empty(t, l.TodaysReceipts())
	})
}

func TestFind(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 10, 16, 20, 0, 0, 0, berlin)}
	l := New(ctx, newTestStore(t), WithClock(clock.Now), WithLocation(berlin))

	l.AddReceipt(ctx, []models.ReceiptItem{item("A", "1", 1)})
	second := l.AddReceipt(ctx, []models.ReceiptItem{item("A", "1", 1)})
	clock.t = clock.t.Add(24 * time.Hour)
	third := l.AddReceipt(ctx, []models.ReceiptItem{item("A", "1", 1)})

	_, number, ok := l.Find(second.ID)
	require.True(t, ok)
	assert.Equal(t, 2, number)

	_, number, ok = l.Find(third.ID)
	require.True(t, ok)
	assert.Equal(t, 1, number, "numbering restarts each day")

	_, _, ok = l.Find("missing")
	assert.False(t, ok)
}

func TestLedgerRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	clock := &fakeClock{t: time.Date(2026, 10, 17, 14, 5, 33, 123456789, berlin)}
	l := New(ctx, store, WithClock(clock.Now), WithLocation(berlin))

	l.AddReceipt(ctx, []models.ReceiptItem{item("A", "3.50", 2), item("B", "2.00", 1)})
	clock.t = clock.t.Add(90 * time.Minute)
	l.AddReceipt(ctx, []models.ReceiptItem{item("C", "1.50", 4)})

	reloaded := New(ctx, store, WithLocation(berlin))
	want, got := l.Receipts(), reloaded.Receipts()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.True(t, want[i].CompletedAt.Equal(got[i].CompletedAt), "timestamp %v != %v", want[i].CompletedAt, got[i].CompletedAt)
		assert.True(t, want[i].Total.Equal(got[i].Total))
		require.Len(t, got[i].Items, len(want[i].Items))
		for j := range want[i].Items {
			assert.Equal(t, want[i].Items[j].Product.ID, got[i].Items[j].Product.ID)
			assert.Equal(t, want[i].Items[j].Quantity, got[i].Items[j].Quantity)
			assert.True(t, want[i].Items[j].Product.Price.Equal(got[i].Items[j].Product.Price))
		}
	}
}

func TestLoadFailuresStartEmpty(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.Save(ctx, storage.ReceiptsKey, []byte(`[{"id":`)))

	l := New(ctx, store)
	assert.Empty(t, l.Receipts())
	assert.Empty(t, l.DailySales())
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	l := New(ctx, store)
	l.AddReceipt(ctx, []models.ReceiptItem{item("A", "3.50", 1)})

	assert.Equal(t, 1, l.ClearAll(ctx))
	assert.Empty(t, l.Receipts())

	data, err := store.Load(ctx, storage.ReceiptsKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
	assert.Empty(t, New(ctx, store).Receipts())
}
