package service

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/vereinskasse/internal/models"
)

// CatalogService

type ListProductsRequest struct {
	// Category filters the list; empty returns every product.
	Category string `json:"category,omitempty"`
}

type ListProductsResponse struct {
	Products []models.Product `json:"products"`
}

// SaveProductRequest carries the product editor form. Price is the text as
// typed, with either "," or "." as decimal separator. An empty ID creates
// a new product.
type SaveProductRequest struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Category string `json:"category"`
	Icon     string `json:"icon,omitempty"`
}

type SaveProductResponse struct {
	Product models.Product `json:"product"`
	Created bool           `json:"created"`
}

type DeleteProductRequest struct {
	ID string `json:"id"`
}

type DeleteProductResponse struct {
	Deleted bool `json:"deleted"`
}

type ResetProductsRequest struct{}

type ResetProductsResponse struct {
	Products []models.Product `json:"products"`
}

// RegisterService

type GetCartRequest struct{}

type AddToCartRequest struct {
	ProductID string `json:"productId"`
}

type UpdateQuantityRequest struct {
	ProductID string `json:"productId"`
	Delta     int    `json:"delta"`
}

type RemoveItemRequest struct {
	ProductID string `json:"productId"`
}

type ClearCartRequest struct{}

// CartResponse is the state of the open receipt after every cart call.
type CartResponse struct {
	Items     []models.ReceiptItem `json:"items"`
	Total     decimal.Decimal      `json:"total"`
	ItemCount int                  `json:"itemCount"`
}

type CompleteSaleRequest struct{}

// CompleteSaleResponse reports Completed false for an empty cart.
type CompleteSaleResponse struct {
	Completed bool                     `json:"completed"`
	Receipt   *models.CompletedReceipt `json:"receipt,omitempty"`
	// Number is the receipt number within its day.
	Number int `json:"number,omitempty"`
}

type PrintCartRequest struct{}

// PrintResponse reports whether data was sent to a thermal printer.
// Sent is false when no printer is configured; use the HTML print page instead.
type PrintResponse struct {
	Sent bool `json:"sent"`
}

// SalesService

type ListDailySalesRequest struct{}

type ListDailySalesResponse struct {
	Days []models.DailySales `json:"days"`
}

type GetTodaysSalesRequest struct{}

type GetTodaysSalesResponse struct {
	Day models.DailySales `json:"day"`
}

type GetSummaryRequest struct{}

type GetSummaryResponse struct {
	Summary models.SalesSummary `json:"summary"`
}

type PrintReceiptRequest struct {
	ReceiptID string `json:"receiptId"`
}

type ClearAllReceiptsRequest struct {
	Confirm bool `json:"confirm"`
}

type ClearAllReceiptsResponse struct {
	Cleared int `json:"cleared"`
}
