package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName        = errors.New("product name must not be empty")
	ErrNegativePrice    = errors.New("product price must not be negative")
	ErrNegativeQuantity = errors.New("product quantity must not be negative")
)

// Product is a catalog entry. Records are immutable once seeded.
type Product struct {
	ID          ID
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewProduct(name, description string, price decimal.Decimal, quantity int, category string) *Product {
	now := time.Now().UTC().Truncate(time.Second)
	return &Product{
		Name:        name,
		Description: description,
		Price:       price,
		Quantity:    quantity,
		Category:    category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if p.Quantity < 0 {
		return ErrNegativeQuantity
	}
	return nil
}

// SampleProducts returns the fixed seed set loaded into an empty catalog.
func SampleProducts() []*Product {
	return []*Product{
		NewProduct("Laptop Pro 15", "High-performance laptop with 16GB RAM and 512GB SSD", decimal.RequireFromString("1299.99"), 25, "Electronics"),
		NewProduct("Wireless Headphones", "Noise-cancelling wireless headphones with 30h battery life", decimal.RequireFromString("199.99"), 50, "Electronics"),
		NewProduct("Coffee Maker", "Programmable coffee maker with 12-cup capacity", decimal.RequireFromString("89.99"), 15, "Home & Kitchen"),
		NewProduct("Running Shoes", "Lightweight running shoes with excellent cushioning", decimal.RequireFromString("129.99"), 30, "Sports & Outdoors"),
		NewProduct("Smartphone", "Latest smartphone with 128GB storage and triple camera", decimal.RequireFromString("699.99"), 40, "Electronics"),
	}
}
