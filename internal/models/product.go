package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Category groups products in the catalog.
type Category string

const (
	CategoryDrinks Category = "drinks"
	CategoryFood   Category = "food"
	CategoryOther  Category = "other"
)

// Categories lists all known categories in display order.
var Categories = []Category{CategoryDrinks, CategoryFood, CategoryOther}

// ParseCategory converts s to a Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Product represents a sellable article.
type Product struct {
	// ID is the unique identifier of the product (e.g. "bier", "product-V1StGXR8").
	ID string `json:"id"`

	// Name is the display name printed on receipts.
	Name string `json:"name"`

	// Price is the unit price, never negative.
	Price decimal.Decimal `json:"price"`

	// Category is one of drinks, food or other.
	Category Category `json:"category"`

	// Icon is an optional emoji shown on the product button.
	Icon string `json:"icon,omitempty"`
}
