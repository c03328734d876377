package client

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/iconplus/catalog/internal/core/dto"
)

var ErrNoData = errors.New("envelope carries no data")

// Envelope is the decoded response body. Data stays raw until the caller
// asks for products.
type Envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    jsoniter.RawMessage `json:"data,omitempty"`
	Count   *int                `json:"count,omitempty"`
	Error   string              `json:"error,omitempty"`
}

func (e Envelope) Products() ([]dto.ProductResponse, error) {
	if len(e.Data) == 0 {
		return nil, ErrNoData
	}
	var products []dto.ProductResponse
	if err := json.Unmarshal(e.Data, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (e Envelope) Product() (dto.ProductResponse, error) {
	var product dto.ProductResponse
	if len(e.Data) == 0 {
		return product, ErrNoData
	}
	err := json.Unmarshal(e.Data, &product)
	return product, err
}
