package service

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	CatalogServiceName  = "vereinskasse.v1.CatalogService"
	RegisterServiceName = "vereinskasse.v1.RegisterService"
	SalesServiceName    = "vereinskasse.v1.SalesService"
)

const (
	ListProductsProcedure  = "/" + CatalogServiceName + "/ListProducts"
	SaveProductProcedure   = "/" + CatalogServiceName + "/SaveProduct"
	DeleteProductProcedure = "/" + CatalogServiceName + "/DeleteProduct"
	ResetProductsProcedure = "/" + CatalogServiceName + "/ResetProducts"

	GetCartProcedure        = "/" + RegisterServiceName + "/GetCart"
	AddToCartProcedure      = "/" + RegisterServiceName + "/AddToCart"
	UpdateQuantityProcedure = "/" + RegisterServiceName + "/UpdateQuantity"
	RemoveItemProcedure     = "/" + RegisterServiceName + "/RemoveItem"
	ClearCartProcedure      = "/" + RegisterServiceName + "/ClearCart"
	CompleteSaleProcedure   = "/" + RegisterServiceName + "/CompleteSale"
	PrintCartProcedure      = "/" + RegisterServiceName + "/PrintCart"

	ListDailySalesProcedure   = "/" + SalesServiceName + "/ListDailySales"
	GetTodaysSalesProcedure   = "/" + SalesServiceName + "/GetTodaysSales"
	GetSummaryProcedure       = "/" + SalesServiceName + "/GetSummary"
	PrintReceiptProcedure     = "/" + SalesServiceName + "/PrintReceipt"
	ClearAllReceiptsProcedure = "/" + SalesServiceName + "/ClearAllReceipts"
)

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{
		connect.WithCodec(codecJSON),
		connect.WithCodec(codecJSONCharset),
	}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(codecJSON)}, opts...)
}

// NewCatalogServiceHandler returns the path prefix and handler serving svc.
func NewCatalogServiceHandler(svc *CatalogService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(ListProductsProcedure, connect.NewUnaryHandler(ListProductsProcedure, svc.ListProducts, opts...))
	mux.Handle(SaveProductProcedure, connect.NewUnaryHandler(SaveProductProcedure, svc.SaveProduct, opts...))
	mux.Handle(DeleteProductProcedure, connect.NewUnaryHandler(DeleteProductProcedure, svc.DeleteProduct, opts...))
	mux.Handle(ResetProductsProcedure, connect.NewUnaryHandler(ResetProductsProcedure, svc.ResetProducts, opts...))
	return "/" + CatalogServiceName + "/", mux
}

// NewRegisterServiceHandler returns the path prefix and handler serving svc.
func NewRegisterServiceHandler(svc *RegisterService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(GetCartProcedure, connect.NewUnaryHandler(GetCartProcedure, svc.GetCart, opts...))
	mux.Handle(AddToCartProcedure, connect.NewUnaryHandler(AddToCartProcedure, svc.AddToCart, opts...))
	mux.Handle(UpdateQuantityProcedure, connect.NewUnaryHandler(UpdateQuantityProcedure, svc.UpdateQuantity, opts...))
	mux.Handle(RemoveItemProcedure, connect.NewUnaryHandler(RemoveItemProcedure, svc.RemoveItem, opts...))
	mux.Handle(ClearCartProcedure, connect.NewUnaryHandler(ClearCartProcedure, svc.ClearCart, opts...))
	mux.Handle(CompleteSaleProcedure, connect.NewUnaryHandler(CompleteSaleProcedure, svc.CompleteSale, opts...))
	mux.Handle(PrintCartProcedure, connect.NewUnaryHandler(PrintCartProcedure, svc.PrintCart, opts...))
	return "/" + RegisterServiceName + "/", mux
}

// NewSalesServiceHandler returns the path prefix and handler serving svc.
func NewSalesServiceHandler(svc *SalesService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(ListDailySalesProcedure, connect.NewUnaryHandler(ListDailySalesProcedure, svc.ListDailySales, opts...))
	mux.Handle(GetTodaysSalesProcedure, connect.NewUnaryHandler(GetTodaysSalesProcedure, svc.GetTodaysSales, opts...))
	mux.Handle(GetSummaryProcedure, connect.NewUnaryHandler(GetSummaryProcedure, svc.GetSummary, opts...))
	mux.Handle(PrintReceiptProcedure, connect.NewUnaryHandler(PrintReceiptProcedure, svc.PrintReceipt, opts...))
	mux.Handle(ClearAllReceiptsProcedure, connect.NewUnaryHandler(ClearAllReceiptsProcedure, svc.ClearAllReceipts, opts...))
	return "/" + SalesServiceName + "/", mux
}

type CatalogServiceClient struct {
	listProducts  *connect.Client[ListProductsRequest, ListProductsResponse]
	saveProduct   *connect.Client[SaveProductRequest, SaveProductResponse]
	deleteProduct *connect.Client[DeleteProductRequest, DeleteProductResponse]
	resetProducts *connect.Client[ResetProductsRequest, ResetProductsResponse]
}

func NewCatalogServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *CatalogServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &CatalogServiceClient{
		listProducts:  connect.NewClient[ListProductsRequest, ListProductsResponse](httpClient, baseURL+ListProductsProcedure, opts...),
		saveProduct:   connect.NewClient[SaveProductRequest, SaveProductResponse](httpClient, baseURL+SaveProductProcedure, opts...),
		deleteProduct: connect.NewClient[DeleteProductRequest, DeleteProductResponse](httpClient, baseURL+DeleteProductProcedure, opts...),
		resetProducts: connect.NewClient[ResetProductsRequest, ResetProductsResponse](httpClient, baseURL+ResetProductsProcedure, opts...),
	}
}

func (c *CatalogServiceClient) ListProducts(ctx context.Context, req *connect.Request[ListProductsRequest]) (*connect.Response[ListProductsResponse], error) {
	return c.listProducts.CallUnary(ctx, req)
}

func (c *CatalogServiceClient) SaveProduct(ctx context.Context, req *connect.Request[SaveProductRequest]) (*connect.Response[SaveProductResponse], error) {
	return c.saveProduct.CallUnary(ctx, req)
}

func (c *CatalogServiceClient) DeleteProduct(ctx context.Context, req *connect.Request[DeleteProductRequest]) (*connect.Response[DeleteProductResponse], error) {
	return c.deleteProduct.CallUnary(ctx, req)
}

func (c *CatalogServiceClient) ResetProducts(ctx context.Context, req *connect.Request[ResetProductsRequest]) (*connect.Response[ResetProductsResponse], error) {
	return c.resetProducts.CallUnary(ctx, req)
}

type RegisterServiceClient struct {
	getCart        *connect.Client[GetCartRequest, CartResponse]
	addToCart      *connect.Client[AddToCartRequest, CartResponse]
	updateQuantity *connect.Client[UpdateQuantityRequest, CartResponse]
	removeItem     *connect.Client[RemoveItemRequest, CartResponse]
	clearCart      *connect.Client[ClearCartRequest, CartResponse]
	completeSale   *connect.Client[CompleteSaleRequest, CompleteSaleResponse]
	printCart      *connect.Client[PrintCartRequest, PrintResponse]
}

func NewRegisterServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *RegisterServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &RegisterServiceClient{
		getCart:        connect.NewClient[GetCartRequest, CartResponse](httpClient, baseURL+GetCartProcedure, opts...),
		addToCart:      connect.NewClient[AddToCartRequest, CartResponse](httpClient, baseURL+AddToCartProcedure, opts...),
		updateQuantity: connect.NewClient[UpdateQuantityRequest, CartResponse](httpClient, baseURL+UpdateQuantityProcedure, opts...),
		removeItem:     connect.NewClient[RemoveItemRequest, CartResponse](httpClient, baseURL+RemoveItemProcedure, opts...),
		clearCart:      connect.NewClient[ClearCartRequest, CartResponse](httpClient, baseURL+ClearCartProcedure, opts...),
		completeSale:   connect.NewClient[CompleteSaleRequest, CompleteSaleResponse](httpClient, baseURL+CompleteSaleProcedure, opts...),
		printCart:      connect.NewClient[PrintCartRequest, PrintResponse](httpClient, baseURL+PrintCartProcedure, opts...),
	}
}

func (c *RegisterServiceClient) GetCart(ctx context.Context, req *connect.Request[GetCartRequest]) (*connect.Response[CartResponse], error) {
	return c.getCart.CallUnary(ctx, req)
}

func (c *RegisterServiceClient) AddToCart(ctx context.Context, req *connect.Request[AddToCartRequest]) (*connect.Response[CartResponse], error) {
	return c.addToCart.CallUnary(ctx, req)
}

func (c *RegisterServiceClient) UpdateQuantity(ctx context.Context, req *connect.Request[UpdateQuantityRequest]) (*connect.Response[CartResponse], error) {
	return c.updateQuantity.CallUnary(ctx, req)
}

func (c *RegisterServiceClient) RemoveItem(ctx context.Context, req *connect.Request[RemoveItemRequest]) (*connect.Response[CartResponse], error) {
	return c.removeItem.CallUnary(ctx, req)
}

func (c *RegisterServiceClient) ClearCart(ctx context.Context, req *connect.Request[ClearCartRequest]) (*connect.Response[CartResponse], error) {
	return c.clearCart.CallUnary(ctx, req)
}

func (c *RegisterServiceClient) CompleteSale(ctx context.Context, req *connect.Request[CompleteSaleRequest]) (*connect.Response[CompleteSaleResponse], error) {
	return c.completeSale.CallUnary(ctx, req)
}

func (c *RegisterServiceClient) PrintCart(ctx context.Context, req *connect.Request[PrintCartRequest]) (*connect.Response[PrintResponse], error) {
	return c.printCart.CallUnary(ctx, req)
}

type SalesServiceClient struct {
	listDailySales   *connect.Client[ListDailySalesRequest, ListDailySalesResponse]
	getTodaysSales   *connect.Client[GetTodaysSalesRequest, GetTodaysSalesResponse]
	getSummary       *connect.Client[GetSummaryRequest, GetSummaryResponse]
	printReceipt     *connect.Client[PrintReceiptRequest, PrintResponse]
	clearAllReceipts *connect.Client[ClearAllReceiptsRequest, ClearAllReceiptsResponse]
}

func NewSalesServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SalesServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &SalesServiceClient{
		listDailySales:   connect.NewClient[ListDailySalesRequest, ListDailySalesResponse](httpClient, baseURL+ListDailySalesProcedure, opts...),
		getTodaysSales:   connect.NewClient[GetTodaysSalesRequest, GetTodaysSalesResponse](httpClient, baseURL+GetTodaysSalesProcedure, opts...),
		getSummary:       connect.NewClient[GetSummaryRequest, GetSummaryResponse](httpClient, baseURL+GetSummaryProcedure, opts...),
		printReceipt:     connect.NewClient[PrintReceiptRequest, PrintResponse](httpClient, baseURL+PrintReceiptProcedure, opts...),
		clearAllReceipts: connect.NewClient[ClearAllReceiptsRequest, ClearAllReceiptsResponse](httpClient, baseURL+ClearAllReceiptsProcedure, opts...),
	}
}

func (c *SalesServiceClient) ListDailySales(ctx context.Context, req *connect.Request[ListDailySalesRequest]) (*connect.Response[ListDailySalesResponse], error) {
	return c.listDailySales.CallUnary(ctx, req)
}

func (c *SalesServiceClient) GetTodaysSales(ctx context.Context, req *connect.Request[GetTodaysSalesRequest]) (*connect.Response[GetTodaysSalesResponse], error) {
	return c.getTodaysSales.CallUnary(ctx, req)
}

func (c *SalesServiceClient) GetSummary(ctx context.Context, req *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

func (c *SalesServiceClient) PrintReceipt(ctx context.Context, req *connect.Request[PrintReceiptRequest]) (*connect.Response[PrintResponse], error) {
	return c.printReceipt.CallUnary(ctx, req)
}

func (c *SalesServiceClient) ClearAllReceipts(ctx context.Context, req *connect.Request[ClearAllReceiptsRequest]) (*connect.Response[ClearAllReceiptsResponse], error) {
	return c.clearAllReceipts.CallUnary(ctx, req)
}
