// Package contract holds the behavioural suite every HTTP deployment of the
// catalog must pass. Each router package runs it against its own handler.
package contract

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iconplus/catalog/internal/adapters/memory"
	"github.com/iconplus/catalog/internal/core/domain"
	"github.com/iconplus/catalog/internal/core/port"
	"github.com/iconplus/catalog/internal/core/port/mock"
	"github.com/iconplus/catalog/internal/core/serviceerrors"
	"github.com/iconplus/catalog/internal/core/service"
	"go.uber.org/mock/gomock"
)

// HandlerFactory builds a deployment's full handler over catalog.
type HandlerFactory func(t *testing.T, catalog port.CatalogPort) http.Handler

type Response struct {
	Code        int
	ContentType string
	Body        []byte
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
	Error   string          `json:"error"`
}

type product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Category    string  `json:"category"`
}

func Do(t *testing.T, h http.Handler, method, target string) Response {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return Response{
		Code:        rec.Code,
		ContentType: rec.Header().Get("Content-Type"),
		Body:        rec.Body.Bytes(),
	}
}

// SeededStore returns a memory store holding the sample products.
func SeededStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	if _, err := service.NewSeedService(store).SeedIfEmpty(context.Background(), domain.SampleProducts()); err != nil {
		t.Fatalf("setup: seed: %v", err)
	}
	return store
}

func decodeEnvelope(t *testing.T, res Response) envelope {
	t.Helper()
	if !strings.HasPrefix(res.ContentType, "application/json") {
		t.Fatalf("expected JSON content type, got %q (body %s)", res.ContentType, res.Body)
	}
	var env envelope
	if err := json.Unmarshal(res.Body, &env); err != nil {
		t.Fatalf("decode envelope %s: %v", res.Body, err)
	}
	return env
}

func expectFailure(t *testing.T, res Response, code int, message string) envelope {
	t.Helper()
	if res.Code != code {
		t.Fatalf("expected status %d, got %d (body %s)", code, res.Code, res.Body)
	}
	env := decodeEnvelope(t, res)
	if env.Success {
		t.Fatal("expected success=false")
	}
	if env.Message != message {
		t.Fatalf("expected message %q, got %q", message, env.Message)
	}
	if env.Error == "" {
		t.Fatal("expected a non-empty error field")
	}
	if len(env.Data) != 0 || env.Count != nil {
		t.Fatalf("expected no data or count on failure, got %s", res.Body)
	}
	return env
}

func unavailableCatalog(t *testing.T) port.CatalogPort {
	ctrl := gomock.NewController(t)
	catalog := mock.NewMockCatalogPort(ctrl)
	cause := serviceerrors.NewUnavailableError("dial tcp 10.0.0.7:3306: connect: connection refused", nil)
	catalog.EXPECT().ListAll(gomock.Any()).Return(nil, cause).AnyTimes()
	catalog.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(nil, cause).AnyTimes()
	return catalog
}

// Run exercises every route of the deployment built by newHandler.
func Run(t *testing.T, newHandler HandlerFactory) {
	t.Run("health is ok while the store is down", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := newHandler(t, mock.NewMockCatalogPort(ctrl))

		res := Do(t, h, http.MethodGet, "/health")
		if res.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", res.Code)
		}
		if string(res.Body) != `{"status":"ok"}` {
			t.Fatalf("expected {\"status\":\"ok\"}, got %s", res.Body)
		}
	})

	t.Run("lists products with a matching count", func(t *testing.T) {
		h := newHandler(t, SeededStore(t))

		for _, path := range []string{"/products", "/api/products"} {
			res := Do(t, h, http.MethodGet, path)
			if res.Code != http.StatusOK {
				t.Fatalf("%s: expected status 200, got %d", path, res.Code)
			}
			env := decodeEnvelope(t, res)
			if !env.Success || env.Message != service.MessageProductsRetrieved || env.Error != "" {
				t.Fatalf("%s: unexpected envelope %s", path, res.Body)
			}
			var products []product
			if err := json.Unmarshal(env.Data, &products); err != nil {
				t.Fatalf("%s: decode data: %v", path, err)
			}
			if env.Count == nil || *env.Count != len(products) || len(products) != 5 {
				t.Fatalf("%s: expected count == len(data) == 5, got %s", path, res.Body)
			}
		}
	})

	t.Run("lists an empty catalog as an empty array", func(t *testing.T) {
		h := newHandler(t, memory.NewStore())

		res := Do(t, h, http.MethodGet, "/products")
		if res.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", res.Code)
		}
		want := `{"success":true,"message":"Products retrieved successfully","data":[],"count":0}`
		if string(res.Body) != want {
			t.Fatalf("expected %s, got %s", want, res.Body)
		}
	})

	t.Run("listing is idempotent", func(t *testing.T) {
		h := newHandler(t, SeededStore(t))

		first := Do(t, h, http.MethodGet, "/products")
		second := Do(t, h, http.MethodGet, "/products")
		if !bytes.Equal(first.Body, second.Body) {
			t.Fatalf("expected identical bodies, got %s and %s", first.Body, second.Body)
		}
	})

	t.Run("list reports store failure as 500 without leaking the cause", func(t *testing.T) {
		h := newHandler(t, unavailableCatalog(t))

		res := Do(t, h, http.MethodGet, "/products")
		env := expectFailure(t, res, http.StatusInternalServerError, service.MessageProductsFailed)
		if strings.Contains(env.Error, "10.0.0.7") {
			t.Fatalf("expected sanitized error, got %q", env.Error)
		}
	})

	t.Run("every listed id round-trips", func(t *testing.T) {
		h := newHandler(t, SeededStore(t))

		env := decodeEnvelope(t, Do(t, h, http.MethodGet, "/products"))
		var products []product
		if err := json.Unmarshal(env.Data, &products); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		for _, listed := range products {
			res := Do(t, h, http.MethodGet, "/products/"+domain.ID(listed.ID).String())
			if res.Code != http.StatusOK {
				t.Fatalf("id %d: expected status 200, got %d", listed.ID, res.Code)
			}
			single := decodeEnvelope(t, res)
			if !single.Success || single.Message != service.MessageProductRetrieved || single.Count != nil {
				t.Fatalf("id %d: unexpected envelope %s", listed.ID, res.Body)
			}
			var got product
			if err := json.Unmarshal(single.Data, &got); err != nil {
				t.Fatalf("id %d: decode data: %v", listed.ID, err)
			}
			if got != listed {
				t.Fatalf("id %d: expected %+v, got %+v", listed.ID, listed, got)
			}
		}
	})

	t.Run("seeded laptop keeps its fields", func(t *testing.T) {
		h := newHandler(t, SeededStore(t))

		env := decodeEnvelope(t, Do(t, h, http.MethodGet, "/api/products/1"))
		var got product
		if err := json.Unmarshal(env.Data, &got); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if got.Name != "Laptop Pro 15" || got.Price != 1299.99 || got.Quantity != 25 || got.Category != "Electronics" {
			t.Fatalf("unexpected product %+v", got)
		}
		if !bytes.Contains(env.Data, []byte(`"price":1299.99`)) {
			t.Fatalf("expected price as a JSON number, got %s", env.Data)
		}
	})

	t.Run("absent id is 404", func(t *testing.T) {
		h := newHandler(t, SeededStore(t))

		for _, raw := range []string{"999", "0", "-3"} {
			res := Do(t, h, http.MethodGet, "/products/"+raw)
			env := expectFailure(t, res, http.StatusNotFound, service.MessageProductNotFound)
			if env.Error != "product "+raw+" does not exist" {
				t.Fatalf("%s: unexpected error text %q", raw, env.Error)
			}
		}
	})

	t.Run("non-numeric id is 400", func(t *testing.T) {
		h := newHandler(t, SeededStore(t))

		for _, raw := range []string{"abc", "1.5", "12x", "99999999999999999999"} {
			expectFailure(t, Do(t, h, http.MethodGet, "/products/"+raw), http.StatusBadRequest, service.MessageInvalidProductID)
		}
	})

	t.Run("get reports store failure as 500", func(t *testing.T) {
		h := newHandler(t, unavailableCatalog(t))

		expectFailure(t, Do(t, h, http.MethodGet, "/products/1"), http.StatusInternalServerError, service.MessageProductFailed)
	})

	t.Run("index lists endpoints", func(t *testing.T) {
		h := newHandler(t, SeededStore(t))

		res := Do(t, h, http.MethodGet, "/")
		if res.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", res.Code)
		}
		if env := decodeEnvelope(t, res); !env.Success || env.Message != service.MessageAPIInfo {
			t.Fatalf("unexpected envelope %s", res.Body)
		}
	})

	t.Run("unknown route is a 404 envelope", func(t *testing.T) {
		h := newHandler(t, SeededStore(t))

		expectFailure(t, Do(t, h, http.MethodGet, "/orders"), http.StatusNotFound, service.MessageRouteNotFound)
	})

	t.Run("wrong method is a 405 envelope", func(t *testing.T) {
		h := newHandler(t, SeededStore(t))

		expectFailure(t, Do(t, h, http.MethodPost, "/products"), http.StatusMethodNotAllowed, service.MessageMethodNotAllowed)
	})

	t.Run("swagger document describes the product routes", func(t *testing.T) {
		h := newHandler(t, SeededStore(t))

		res := Do(t, h, http.MethodGet, "/swagger/doc.json")
		if res.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", res.Code)
		}
		if !strings.HasPrefix(res.ContentType, "application/json") {
			t.Fatalf("unexpected content type %q", res.ContentType)
		}
		var doc struct {
			Swagger string                    `json:"swagger"`
			Paths   map[string]map[string]any `json:"paths"`
		}
		if err := json.Unmarshal(res.Body, &doc); err != nil {
			t.Fatalf("decode swagger document: %v", err)
		}
		for _, path := range []string{"/health", "/products", "/products/{id}"} {
			if _, ok := doc.Paths[path]["get"]; !ok {
				t.Errorf("swagger document lacks GET %s", path)
			}
		}
	})

	t.Run("handler panic is a 500 envelope", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		catalog := mock.NewMockCatalogPort(ctrl)
		catalog.EXPECT().ListAll(gomock.Any()).DoAndReturn(func(context.Context) ([]*domain.Product, error) {
			panic("driver exploded")
		})
		h := newHandler(t, catalog)

		expectFailure(t, Do(t, h, http.MethodGet, "/products"), http.StatusInternalServerError, service.MessageInternalError)
	})
}
