package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/iconplus/catalog/internal/core/domain"
	"github.com/iconplus/catalog/internal/core/dto"
	"github.com/iconplus/catalog/internal/core/port/mock"
	"github.com/iconplus/catalog/internal/core/serviceerrors"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

type observedLookup struct {
	operation string
	status    Status
}

type recordingObserver struct {
	lookups []observedLookup
}

func (r *recordingObserver) ObserveLookup(operation string, status Status) {
	r.lookups = append(r.lookups, observedLookup{operation, status})
}

func setupCatalogService(t *testing.T) (*CatalogService, *mock.MockCatalogPort, *recordingObserver) {
	ctrl := gomock.NewController(t)
	catalog := mock.NewMockCatalogPort(ctrl)
	observer := &recordingObserver{}
	svc := NewCatalogService(catalog, observer)
	return svc, catalog, observer
}

func sampleCatalog() []*domain.Product {
	products := domain.SampleProducts()
	for i, p := range products {
		p.ID = domain.ID(i + 1)
	}
	return products
}

func TestCatalogService_ListProducts(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, catalog, observer := setupCatalogService(t)
		catalog.EXPECT().ListAll(gomock.Any()).Return(sampleCatalog(), nil)

		result := svc.ListProducts(context.Background())
		if result.Status != StatusOK {
			t.Fatalf("expected StatusOK, got %s", result.Status)
		}
		env := result.Envelope
		if !env.Success || env.Message != MessageProductsRetrieved {
			t.Fatalf("unexpected envelope: %+v", env)
		}
		data, ok := env.Data.([]dto.ProductResponse)
		if !ok {
			t.Fatalf("expected []dto.ProductResponse, got %T", env.Data)
		}
		if env.Count == nil || *env.Count != len(data) || len(data) != 5 {
			t.Fatalf("expected count == len(data) == 5, got count=%v len=%d", env.Count, len(data))
		}
		if env.Error != "" {
			t.Fatalf("expected no error text, got %q", env.Error)
		}
		if len(observer.lookups) != 1 || observer.lookups[0] != (observedLookup{"list", StatusOK}) {
			t.Fatalf("unexpected observations: %+v", observer.lookups)
		}
	})

	t.Run("seeded laptop round-trips", func(t *testing.T) {
		svc, catalog, _ := setupCatalogService(t)
		catalog.EXPECT().ListAll(gomock.Any()).Return(sampleCatalog(), nil)

		data := svc.ListProducts(context.Background()).Envelope.Data.([]dto.ProductResponse)
		var found bool
		for _, p := range data {
			if p.Name == "Laptop Pro 15" {
				found = p.Price == 1299.99 && p.Quantity == 25 && p.Category == "Electronics"
			}
		}
		if !found {
			t.Fatal("expected Laptop Pro 15 with price 1299.99, quantity 25, category Electronics")
		}
	})

	t.Run("empty catalog", func(t *testing.T) {
		svc, catalog, _ := setupCatalogService(t)
		catalog.EXPECT().ListAll(gomock.Any()).Return(nil, nil)

		env := svc.ListProducts(context.Background()).Envelope
		data, ok := env.Data.([]dto.ProductResponse)
		if !ok || data == nil {
			t.Fatalf("expected non-nil empty slice, got %#v", env.Data)
		}
		if env.Count == nil || *env.Count != 0 {
			t.Fatalf("expected count 0, got %v", env.Count)
		}
	})

	t.Run("store unavailable", func(t *testing.T) {
		svc, catalog, observer := setupCatalogService(t)
		cause := errors.New("dial tcp 10.0.0.7:3306: connect: connection refused")
		catalog.EXPECT().ListAll(gomock.Any()).
			Return(nil, serviceerrors.NewUnavailableError("catalog store unavailable", cause))

		result := svc.ListProducts(context.Background())
		if result.Status != StatusUnavailable {
			t.Fatalf("expected StatusUnavailable, got %s", result.Status)
		}
		env := result.Envelope
		if env.Success || env.Message != MessageProductsFailed {
			t.Fatalf("unexpected envelope: %+v", env)
		}
		if env.Data != nil || env.Count != nil {
			t.Fatalf("failure envelope must not carry data: %+v", env)
		}
		if env.Error != errStoreUnavailable {
			t.Fatalf("expected sanitized error, got %q", env.Error)
		}
		if observer.lookups[0].status != StatusUnavailable {
			t.Fatalf("expected unavailable observation, got %+v", observer.lookups)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		svc, catalog, _ := setupCatalogService(t)
		products := sampleCatalog()
		catalog.EXPECT().ListAll(gomock.Any()).Return(products, nil).Times(2)

		first, _ := json.Marshal(svc.ListProducts(context.Background()).Envelope)
		second, _ := json.Marshal(svc.ListProducts(context.Background()).Envelope)
		if string(first) != string(second) {
			t.Fatalf("expected identical responses:\n%s\n%s", first, second)
		}
	})
}

func TestCatalogService_GetProduct(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, catalog, _ := setupCatalogService(t)
		expected := &domain.Product{
			ID:       domain.ID(4),
			Name:     "Running Shoes",
			Price:    decimal.RequireFromString("129.99"),
			Quantity: 30,
			Category: "Sports & Outdoors",
		}
		catalog.EXPECT().GetByID(gomock.Any(), domain.ID(4)).Return(expected, nil)

		result := svc.GetProduct(context.Background(), 4)
		if result.Status != StatusOK {
			t.Fatalf("expected StatusOK, got %s", result.Status)
		}
		data, ok := result.Envelope.Data.(dto.ProductResponse)
		if !ok {
			t.Fatalf("expected dto.ProductResponse, got %T", result.Envelope.Data)
		}
		if data.ID != 4 {
			t.Fatalf("expected data.id 4, got %d", data.ID)
		}
		if result.Envelope.Count != nil {
			t.Fatal("single-product envelope must not carry count")
		}
		if result.Envelope.Message != MessageProductRetrieved {
			t.Fatalf("unexpected message %q", result.Envelope.Message)
		}
	})

	t.Run("not found", func(t *testing.T) {
		svc, catalog, observer := setupCatalogService(t)
		catalog.EXPECT().GetByID(gomock.Any(), domain.ID(99)).
			Return(nil, serviceerrors.NewNotFoundError("product not found"))

		result := svc.GetProduct(context.Background(), 99)
		if result.Status != StatusNotFound {
			t.Fatalf("expected StatusNotFound, got %s", result.Status)
		}
		if result.Envelope.Success || result.Envelope.Message != MessageProductNotFound {
			t.Fatalf("unexpected envelope: %+v", result.Envelope)
		}
		if result.Envelope.Error != "product 99 does not exist" {
			t.Fatalf("unexpected error text %q", result.Envelope.Error)
		}
		if observer.lookups[0] != (observedLookup{"get", StatusNotFound}) {
			t.Fatalf("unexpected observations: %+v", observer.lookups)
		}
	})

	t.Run("store failure does not leak details", func(t *testing.T) {
		svc, catalog, _ := setupCatalogService(t)
		catalog.EXPECT().GetByID(gomock.Any(), domain.ID(1)).
			Return(nil, errors.New("Error 1146 (42S02): Table 'laravel.products' doesn't exist"))

		result := svc.GetProduct(context.Background(), 1)
		if result.Status != StatusUnavailable {
			t.Fatalf("expected StatusUnavailable, got %s", result.Status)
		}
		if result.Envelope.Error != errStoreUnavailable {
			t.Fatalf("expected sanitized error, got %q", result.Envelope.Error)
		}
	})

	t.Run("store rejecting the id is an invalid request", func(t *testing.T) {
		svc, catalog, observer := setupCatalogService(t)
		catalog.EXPECT().GetByID(gomock.Any(), domain.ID(7)).
			Return(nil, serviceerrors.NewInvalidRequestError("id out of range for this store"))

		result := svc.GetProduct(context.Background(), 7)
		if result.Status != StatusInvalid {
			t.Fatalf("expected StatusInvalid, got %s", result.Status)
		}
		if result.Envelope.Message != MessageInvalidProductID || result.Envelope.Error != "id out of range for this store" {
			t.Fatalf("unexpected envelope: %+v", result.Envelope)
		}
		if observer.lookups[0] != (observedLookup{"get", StatusInvalid}) {
			t.Fatalf("unexpected observations: %+v", observer.lookups)
		}
	})
}

func TestCatalogService_GetProductByRawID(t *testing.T) {
	t.Run("invalid id never reaches the store", func(t *testing.T) {
		svc, _, observer := setupCatalogService(t)

		result := svc.GetProductByRawID(context.Background(), "abc")
		if result.Status != StatusInvalid {
			t.Fatalf("expected StatusInvalid, got %s", result.Status)
		}
		if result.Envelope.Message != MessageInvalidProductID || result.Envelope.Success {
			t.Fatalf("unexpected envelope: %+v", result.Envelope)
		}
		if result.Envelope.Error != domain.ErrInvalidID.Error() {
			t.Fatalf("unexpected error text %q", result.Envelope.Error)
		}
		if observer.lookups[0].status != StatusInvalid {
			t.Fatalf("unexpected observations: %+v", observer.lookups)
		}
	})

	t.Run("zero and negative ids are absent, not invalid", func(t *testing.T) {
		svc, catalog, _ := setupCatalogService(t)
		for _, id := range []domain.ID{0, -3} {
			catalog.EXPECT().GetByID(gomock.Any(), id).
				Return(nil, serviceerrors.NewNotFoundError("product not found"))
		}

		for raw, want := range map[string]string{"0": "product 0 does not exist", "-3": "product -3 does not exist"} {
			result := svc.GetProductByRawID(context.Background(), raw)
			if result.Status != StatusNotFound {
				t.Fatalf("%s: expected StatusNotFound, got %s", raw, result.Status)
			}
			if result.Envelope.Error != want {
				t.Fatalf("%s: unexpected error text %q", raw, result.Envelope.Error)
			}
		}
	})

	t.Run("valid id is looked up", func(t *testing.T) {
		svc, catalog, _ := setupCatalogService(t)
		catalog.EXPECT().GetByID(gomock.Any(), domain.ID(2)).Return(sampleCatalog()[1], nil)

		result := svc.GetProductByRawID(context.Background(), "2")
		if result.Status != StatusOK {
			t.Fatalf("expected StatusOK, got %s", result.Status)
		}
	})
}

func TestCatalogService_NilObserver(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mock.NewMockCatalogPort(ctrl)
	catalog.EXPECT().ListAll(gomock.Any()).Return(nil, nil)

	svc := NewCatalogService(catalog, nil)
	if result := svc.ListProducts(context.Background()); result.Status != StatusOK {
		t.Fatalf("expected StatusOK, got %s", result.Status)
	}
}
