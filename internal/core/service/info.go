package service

import (
	"fmt"

	"github.com/iconplus/catalog/internal/core/dto"
)

// Envelope texts shared by every inbound transport, so that all deployments
// answer routing failures identically.
const (
	MessageAPIInfo          = "Product catalog API"
	MessageRouteNotFound    = "Route not found"
	MessageMethodNotAllowed = "Method not allowed"
	MessageTooManyRequests  = "Too many requests"
	MessageInternalError    = "Internal server error"

	ErrRateLimitExceeded = "rate limit exceeded"
	ErrUnexpected        = "unexpected server error"
)

type APIInfo struct {
	Endpoints []string `json:"endpoints"`
}

func NewAPIInfoEnvelope() dto.Envelope {
	return dto.NewSuccessEnvelope(MessageAPIInfo, APIInfo{
		Endpoints: []string{
			"GET /health",
			"GET /products",
			"GET /products/{id}",
			"GET /api/products",
			"GET /api/products/{id}",
		},
	})
}

func NewRouteNotFoundEnvelope(method, path string) dto.Envelope {
	return dto.NewFailureEnvelope(MessageRouteNotFound, fmt.Sprintf("no route for %s %s", method, path))
}

func NewMethodNotAllowedEnvelope(method, path string) dto.Envelope {
	return dto.NewFailureEnvelope(MessageMethodNotAllowed, fmt.Sprintf("%s is not allowed on %s", method, path))
}
