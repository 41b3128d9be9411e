package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/vereinskasse/internal/cart"
	"github.com/mmynk/vereinskasse/internal/catalog"
	"github.com/mmynk/vereinskasse/internal/ledger"
	"github.com/mmynk/vereinskasse/internal/printer"
)

// PrintSettings controls the receipt header and paper width.
type PrintSettings struct {
	ShopName string
	Width    int
}

// RegisterService implements vereinskasse.v1.RegisterService: the open
// receipt and its checkout.
type RegisterService struct {
	catalog  *catalog.Catalog
	cart     *cart.Cart
	ledger   *ledger.Ledger
	sink     cart.ReceiptSink
	printer  printer.Printer
	settings PrintSettings
}

func NewRegisterService(products *catalog.Catalog, c *cart.Cart, l *ledger.Ledger, p printer.Printer, settings PrintSettings) *RegisterService {
	return &RegisterService{
		catalog:  products,
		cart:     c,
		ledger:   l,
		sink:     l,
		printer:  p,
		settings: settings,
	}
}

// WithSink routes completed sales through sink instead of the ledger
// directly. sink must end in the same ledger.
func (s *RegisterService) WithSink(sink cart.ReceiptSink) *RegisterService {
	s.sink = sink
	return s
}

func (s *RegisterService) cartResponse() *connect.Response[CartResponse] {
	state := s.cart.State()
	return connect.NewResponse(&CartResponse{
		Items:     state.Items,
		Total:     state.Total,
		ItemCount: state.ItemCount,
	})
}

func (s *RegisterService) GetCart(ctx context.Context, req *connect.Request[GetCartRequest]) (*connect.Response[CartResponse], error) {
	return s.cartResponse(), nil
}

// AddToCart adds one unit of a catalog product, merging with an existing line.
func (s *RegisterService) AddToCart(ctx context.Context, req *connect.Request[AddToCartRequest]) (*connect.Response[CartResponse], error) {
	product, ok := s.catalog.Get(req.Msg.ProductID)
	if !ok {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("product %q not found", req.Msg.ProductID))
	}
	s.cart.AddProduct(product)
	return s.cartResponse(), nil
}

// UpdateQuantity changes a line by delta; a line reaching zero is removed.
func (s *RegisterService) UpdateQuantity(ctx context.Context, req *connect.Request[UpdateQuantityRequest]) (*connect.Response[CartResponse], error) {
	s.cart.UpdateQuantity(req.Msg.ProductID, req.Msg.Delta)
	return s.cartResponse(), nil
}

func (s *RegisterService) RemoveItem(ctx context.Context, req *connect.Request[RemoveItemRequest]) (*connect.Response[CartResponse], error) {
	s.cart.RemoveItem(req.Msg.ProductID)
	return s.cartResponse(), nil
}

func (s *RegisterService) ClearCart(ctx context.Context, req *connect.Request[ClearCartRequest]) (*connect.Response[CartResponse], error) {
	s.cart.Clear()
	return s.cartResponse(), nil
}

// CompleteSale moves the cart into the ledger. An empty cart is not an
// error; the response just reports Completed false.
func (s *RegisterService) CompleteSale(ctx context.Context, req *connect.Request[CompleteSaleRequest]) (*connect.Response[CompleteSaleResponse], error) {
	receipt, ok := s.cart.Complete(ctx, s.sink)
	if !ok {
		slog.Debug("CompleteSale on empty cart")
		return connect.NewResponse(&CompleteSaleResponse{}), nil
	}

	_, number, _ := s.ledger.Find(receipt.ID)
	return connect.NewResponse(&CompleteSaleResponse{
		Completed: true,
		Receipt:   &receipt,
		Number:    number,
	}), nil
}

// PrintCart sends the open cart to the thermal printer, for a customer
// who wants to see the bill before paying.
func (s *RegisterService) PrintCart(ctx context.Context, req *connect.Request[PrintCartRequest]) (*connect.Response[PrintResponse], error) {
	state := s.cart.State()
	if len(state.Items) == 0 {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errors.New("cart is empty"))
	}

	view := printer.FromCart(s.settings.ShopName, state.Items, state.Total, s.ledger.Now())
	return send(s.printer, printer.FormatESCPOS(view, s.settings.Width))
}

func send(p printer.Printer, data []byte) (*connect.Response[PrintResponse], error) {
	if !printer.Enabled(p) {
		return connect.NewResponse(&PrintResponse{Sent: false}), nil
	}
	if err := p.Print(data); err != nil {
		slog.Error("Print failed", "error", err)
		return nil, connect.NewError(connect.CodeUnavailable, err)
	}
	return connect.NewResponse(&PrintResponse{Sent: true}), nil
}
