package dto

import (
	"time"

	"github.com/iconplus/catalog/internal/core/domain"
)

// ProductResponse is the wire form of a product. Both HTTP deployments and
// the client adapter share it.
type ProductResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          int64(product.ID),
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price.InexactFloat64(),
		Quantity:    product.Quantity,
		Category:    product.Category,
		CreatedAt:   product.CreatedAt.UTC(),
		UpdatedAt:   product.UpdatedAt.UTC(),
	}
}

func NewProductResponses(products []*domain.Product) []ProductResponse {
	response := make([]ProductResponse, len(products))
	for i, product := range products {
		response[i] = NewProductResponse(product)
	}
	return response
}
