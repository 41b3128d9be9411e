package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/shopspring/decimal"

	"github.com/mmynk/vereinskasse/internal/models"
)

var (
	ErrEmptyName       = errors.New("product name must not be empty")
	ErrInvalidPrice    = errors.New("price must be a number greater than zero")
	ErrUnknownCategory = errors.New("unknown product category")
)

// pricePattern accepts plain decimals only: no sign, no exponent and
// at most 7 integer digits.
var pricePattern = regexp.MustCompile(`^(\d{1,7}(\.\d{1,6})?|\.\d{1,6})$`)

// DefaultIcon is used when a draft has no icon.
const DefaultIcon = "🍺"

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Draft is an unvalidated product edit as typed into the product editor.
// An empty ID means a new product.
type Draft struct {
	ID       string
	Name     string
	Price    string
	Category string
	Icon     string
}

// Validate checks the draft and converts it to a Product.
// A new product is assigned a fresh id.
func (d Draft) Validate() (models.Product, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return models.Product{}, ErrEmptyName
	}

	price, err := ParsePrice(d.Price)
	if err != nil {
		return models.Product{}, err
	}

	category, err := models.ParseCategory(d.Category)
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: %q", ErrUnknownCategory, d.Category)
	}

	icon := d.Icon
	if icon == "" {
		icon = DefaultIcon
	}

	id := d.ID
	if id == "" {
		id, err = NewProductID()
		if err != nil {
			return models.Product{}, err
		}
	}

	return models.Product{
		ID:       id,
		Name:     name,
		Price:    price,
		Category: category,
		Icon:     icon,
	}, nil
}

// ParsePrice parses a price typed with either "," or "." as decimal separator.
// The result is rounded to cents and must be greater than zero.
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return decimal.Decimal{}, ErrInvalidPrice
	}
	if !pricePattern.MatchString(s) {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	price = price.Round(2)
	if !price.IsPositive() {
		return decimal.Decimal{}, ErrInvalidPrice
	}
	return price, nil
}

// NewProductID generates an id for a product created in the editor.
func NewProductID() (string, error) {
	id, err := gonanoid.Generate(idAlphabet, 10)
	if err != nil {
		return "", fmt.Errorf("failed to generate product id: %w", err)
	}
	return "product-" + id, nil
}
