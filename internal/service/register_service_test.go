package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"

	"github.com/mmynk/vereinskasse/internal/cart"
)

func add(t *testing.T, env *testEnv, ids ...string) *CartResponse {
	t.Helper()
	var last *CartResponse
	for _, id := range ids {
		resp, err := env.Register.AddToCart(context.Background(), connect.NewRequest(&AddToCartRequest{ProductID: id}))
		if err != nil {
			t.Fatalf("AddToCart(%s) failed: %v", id, err)
		}
		last = resp.Msg
	}
	return last
}

func TestCartOperations(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	current := add(t, env, "bier", "wasser", "bier")
	if len(current.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(current.Items))
	}
	if current.Items[0].Product.ID != "bier" || current.Items[0].Quantity != 2 {
		t.Errorf("first line: expected bier x2, got %s x%d", current.Items[0].Product.ID, current.Items[0].Quantity)
	}
	if !current.Total.Equal(decimal.RequireFromString("9.00")) {
		t.Errorf("total: expected 9.00, got %s", current.Total)
	}
	if current.ItemCount != 3 {
		t.Errorf("itemCount: expected 3, got %d", current.ItemCount)
	}

	resp, err := env.Register.UpdateQuantity(ctx, connect.NewRequest(&UpdateQuantityRequest{ProductID: "wasser", Delta: -1}))
	if err != nil {
		t.Fatalf("UpdateQuantity failed: %v", err)
	}
	if len(resp.Msg.Items) != 1 {
		t.Errorf("decrement to zero should remove the line, got %d lines", len(resp.Msg.Items))
	}

	resp, err = env.Register.UpdateQuantity(ctx, connect.NewRequest(&UpdateQuantityRequest{ProductID: "bier", Delta: 3}))
	if err != nil {
		t.Fatalf("UpdateQuantity failed: %v", err)
	}
	if resp.Msg.Items[0].Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", resp.Msg.Items[0].Quantity)
	}

	resp, err = env.Register.UpdateQuantity(ctx, connect.NewRequest(&UpdateQuantityRequest{ProductID: "bier", Delta: math.MaxInt}))
	if err != nil {
		t.Fatalf("UpdateQuantity failed: %v", err)
	}
	if len(resp.Msg.Items) != 1 || resp.Msg.Items[0].Quantity != cart.MaxQuantity {
		t.Errorf("expected quantity clamped to %d, got %+v", cart.MaxQuantity, resp.Msg.Items)
	}
	if !resp.Msg.Total.IsPositive() {
		t.Errorf("expected positive total, got %s", resp.Msg.Total)
	}

	resp, err = env.Register.RemoveItem(ctx, connect.NewRequest(&RemoveItemRequest{ProductID: "bier"}))
	if err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if len(resp.Msg.Items) != 0 || !resp.Msg.Total.IsZero() {
		t.Errorf("expected empty cart, got %+v", resp.Msg)
	}

	add(t, env, "cola", "kaffee")
	resp, err = env.Register.ClearCart(ctx, connect.NewRequest(&ClearCartRequest{}))
	if err != nil {
		t.Fatalf("ClearCart failed: %v", err)
	}
	if len(resp.Msg.Items) != 0 {
		t.Errorf("expected empty cart after clear, got %d lines", len(resp.Msg.Items))
	}
}

func TestCompleteSale(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	empty, err := env.Register.CompleteSale(ctx, connect.NewRequest(&CompleteSaleRequest{}))
	if err != nil {
		t.Fatalf("CompleteSale on empty cart failed: %v", err)
	}
	if empty.Msg.Completed || empty.Msg.Receipt != nil {
		t.Errorf("empty cart must not complete: %+v", empty.Msg)
	}
	if n := len(env.Ledger.Receipts()); n != 0 {
		t.Fatalf("empty checkout stored %d receipts", n)
	}

	add(t, env, "bier", "bier", "wasser")
	resp, err := env.Register.CompleteSale(ctx, connect.NewRequest(&CompleteSaleRequest{}))
	if err != nil {
		t.Fatalf("CompleteSale failed: %v", err)
	}
	if !resp.Msg.Completed || resp.Msg.Receipt == nil {
		t.Fatalf("expected completed sale, got %+v", resp.Msg)
	}
	if !resp.Msg.Receipt.Total.Equal(decimal.RequireFromString("9.00")) {
		t.Errorf("total: expected 9.00, got %s", resp.Msg.Receipt.Total)
	}
	if resp.Msg.Number != 1 {
		t.Errorf("number: expected 1, got %d", resp.Msg.Number)
	}
	if !resp.Msg.Receipt.CompletedAt.Equal(env.Clock.Now()) {
		t.Errorf("completedAt: expected %v, got %v", env.Clock.Now(), resp.Msg.Receipt.CompletedAt)
	}

	cart, err := env.Register.GetCart(ctx, connect.NewRequest(&GetCartRequest{}))
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if len(cart.Msg.Items) != 0 {
		t.Errorf("cart not cleared after checkout: %d lines", len(cart.Msg.Items))
	}

	add(t, env, "cola")
	second, err := env.Register.CompleteSale(ctx, connect.NewRequest(&CompleteSaleRequest{}))
	if err != nil {
		t.Fatalf("CompleteSale failed: %v", err)
	}
	if second.Msg.Number != 2 {
		t.Errorf("number: expected 2, got %d", second.Msg.Number)
	}
	if second.Msg.Receipt.ID == resp.Msg.Receipt.ID {
		t.Error("receipt ids must be unique")
	}

	if got := testutil.ToFloat64(env.Metrics.ReceiptsCompleted); got != 2 {
		t.Errorf("receipts metric: expected 2, got %v", got)
	}
	if got := testutil.ToFloat64(env.Metrics.ItemsSold); got != 4 {
		t.Errorf("items metric: expected 4, got %v", got)
	}
}

func TestCompletedReceiptSurvivesCatalogEdits(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	add(t, env, "bier", "bier")
	if _, err := env.Register.CompleteSale(ctx, connect.NewRequest(&CompleteSaleRequest{})); err != nil {
		t.Fatalf("CompleteSale failed: %v", err)
	}

	if _, err := env.Catalog.SaveProduct(ctx, connect.NewRequest(&SaveProductRequest{
		ID: "bier", Name: "Bier (Maß)", Price: "9,50", Category: "drinks",
	})); err != nil {
		t.Fatalf("SaveProduct failed: %v", err)
	}
	if _, err := env.Catalog.DeleteProduct(ctx, connect.NewRequest(&DeleteProductRequest{ID: "bier"})); err != nil {
		t.Fatalf("DeleteProduct failed: %v", err)
	}

	days, err := env.Sales.ListDailySales(ctx, connect.NewRequest(&ListDailySalesRequest{}))
	if err != nil {
		t.Fatalf("ListDailySales failed: %v", err)
	}
	receipt := days.Msg.Days[0].Receipts[0]
	if !receipt.Total.Equal(decimal.RequireFromString("7.00")) {
		t.Errorf("historical total changed: %s", receipt.Total)
	}
	if receipt.Items[0].Product.Name != "Bier" || !receipt.Items[0].Product.Price.Equal(decimal.RequireFromString("3.50")) {
		t.Errorf("historical snapshot changed: %+v", receipt.Items[0].Product)
	}
}

func TestPrintCart(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	_, err := env.Register.PrintCart(ctx, connect.NewRequest(&PrintCartRequest{}))
	assertCode(t, err, connect.CodeFailedPrecondition)

	add(t, env, "bratwurst", "pommes")
	resp, err := env.Register.PrintCart(ctx, connect.NewRequest(&PrintCartRequest{}))
	if err != nil {
		t.Fatalf("PrintCart failed: %v", err)
	}
	if !resp.Msg.Sent {
		t.Error("expected the job to be sent")
	}

	jobs := env.Printer.Jobs()
	if len(jobs) != 1 {
		t.Fatalf("expected 1 print job, got %d", len(jobs))
	}
	text, _ := charmap.CodePage858.NewDecoder().Bytes(jobs[0])
	for _, want := range []string{"VEREINSKASSE", "Bratwurst", "Pommes", "7,00 €"} {
		if !strings.Contains(string(text), want) {
			t.Errorf("print job missing %q", want)
		}
	}
	if strings.Contains(string(text), "Beleg #") {
		t.Error("an open cart has no receipt number")
	}

	env.Printer.Fail(errors.New("paper out"))
	_, err = env.Register.PrintCart(ctx, connect.NewRequest(&PrintCartRequest{}))
	assertCode(t, err, connect.CodeUnavailable)
}

func TestPrintCart_NoPrinter(t *testing.T) {
	env := setupTestServer(t, withNullPrinter())
	ctx := context.Background()

	add(t, env, "kaffee")
	resp, err := env.Register.PrintCart(ctx, connect.NewRequest(&PrintCartRequest{}))
	if err != nil {
		t.Fatalf("PrintCart failed: %v", err)
	}
	if resp.Msg.Sent {
		t.Error("nothing should be sent without a printer")
	}
}
