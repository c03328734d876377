package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/iconplus/catalog/internal/core/domain"
	"github.com/iconplus/catalog/internal/core/dto"
	"github.com/iconplus/catalog/internal/core/logger"
	"github.com/iconplus/catalog/internal/core/port"
	"github.com/iconplus/catalog/internal/core/serviceerrors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/iconplus/catalog/internal/core/service"

// LookupObserver is notified of every catalog lookup outcome. The metrics
// adapter implements it; nil disables observation.
type LookupObserver interface {
	ObserveLookup(operation string, status Status)
}

type CatalogService struct {
	catalog  port.CatalogPort
	observer LookupObserver
}

func NewCatalogService(catalog port.CatalogPort, observer LookupObserver) *CatalogService {
	return &CatalogService{catalog: catalog, observer: observer}
}

func (s *CatalogService) ListProducts(ctx context.Context) Result {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "CatalogService.ListProducts")
	defer span.End()

	products, err := s.catalog.ListAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, errStoreUnavailable)
		logger.Error(ctx, "catalog: list failed", err, nil)
		return s.observe("list", Result{
			Status:   StatusUnavailable,
			Envelope: dto.NewFailureEnvelope(MessageProductsFailed, errStoreUnavailable),
		})
	}

	span.SetAttributes(attribute.Int("catalog.count", len(products)))
	return s.observe("list", Result{
		Status:   StatusOK,
		Envelope: dto.NewCollectionEnvelope(MessageProductsRetrieved, dto.NewProductResponses(products)),
	})
}

func (s *CatalogService) GetProduct(ctx context.Context, id domain.ID) Result {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "CatalogService.GetProduct")
	defer span.End()
	span.SetAttributes(attribute.Int64("catalog.product_id", int64(id)))

	product, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		result := failedLookup(ctx, id.String(), err)
		if result.Status == StatusUnavailable {
			span.RecordError(err)
			span.SetStatus(codes.Error, errStoreUnavailable)
		}
		return s.observe("get", result)
	}
	return s.observe("get", Result{
		Status:   StatusOK,
		Envelope: dto.NewSuccessEnvelope(MessageProductRetrieved, dto.NewProductResponse(product)),
	})
}

// GetProductByRawID parses a path segment before looking it up, so that both
// HTTP deployments reject malformed ids with the same envelope. Integers
// that name no product are a 404, not a 400.
func (s *CatalogService) GetProductByRawID(ctx context.Context, raw string) Result {
	id, err := domain.ParseID(raw)
	if err != nil {
		return s.observe("get", failedLookup(ctx, raw, serviceerrors.NewInvalidRequestError(err.Error())))
	}
	return s.GetProduct(ctx, id)
}

// failedLookup maps a lookup error to its envelope by kind. Store error
// text is logged and never returned.
func failedLookup(ctx context.Context, id string, err error) Result {
	var svcErr *serviceerrors.ServiceError
	switch {
	case serviceerrors.IsOfKind(err, serviceerrors.KindInvalidRequest) && errors.As(err, &svcErr):
		return Result{
			Status:   StatusInvalid,
			Envelope: dto.NewFailureEnvelope(MessageInvalidProductID, svcErr.Message),
		}
	case serviceerrors.IsOfKind(err, serviceerrors.KindNotFound):
		logger.Debug(ctx, "catalog: product not found", map[string]any{"product_id": id})
		return Result{
			Status:   StatusNotFound,
			Envelope: dto.NewFailureEnvelope(MessageProductNotFound, fmt.Sprintf("product %s does not exist", id)),
		}
	default:
		logger.Error(ctx, "catalog: get failed", err, map[string]any{"product_id": id})
		return Result{
			Status:   StatusUnavailable,
			Envelope: dto.NewFailureEnvelope(MessageProductFailed, errStoreUnavailable),
		}
	}
}

func (s *CatalogService) observe(operation string, result Result) Result {
	if s.observer != nil {
		s.observer.ObserveLookup(operation, result.Status)
	}
	return result
}
