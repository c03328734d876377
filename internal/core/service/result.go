package service

import "github.com/iconplus/catalog/internal/core/dto"

// Status tells the inbound adapter which outcome class an Envelope belongs
// to. Adapters map it to their transport's status codes.
type Status int

const (
	StatusOK Status = iota
	StatusNotFound
	StatusInvalid
	StatusUnavailable
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNotFound:
		return "not_found"
	case StatusInvalid:
		return "invalid"
	case StatusUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

type Result struct {
	Status   Status
	Envelope dto.Envelope
}

const (
	MessageProductsRetrieved = "Products retrieved successfully"
	MessageProductRetrieved  = "Product retrieved successfully"
	MessageProductsFailed    = "Error retrieving products"
	MessageProductFailed     = "Error retrieving product"
	MessageProductNotFound   = "Product not found"
	MessageInvalidProductID  = "Invalid product ID"

	errStoreUnavailable = "catalog store unavailable"
)
