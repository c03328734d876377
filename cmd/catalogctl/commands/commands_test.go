package commands

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/gin-gonic/gin"

	"github.com/iconplus/catalog/internal/adapters/contract"
	"github.com/iconplus/catalog/internal/adapters/echoapi"
	adapthttp "github.com/iconplus/catalog/internal/adapters/http"
	"github.com/iconplus/catalog/internal/adapters/http/controllers"
	"github.com/iconplus/catalog/internal/core/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func startDeployments(t *testing.T) (ginURL, echoURL string) {
	t.Helper()
	catalog := service.NewCatalogService(contract.SeededStore(t), nil)

	ginServer := httptest.NewServer(adapthttp.NewRouter(
		controllers.NewInfoController(),
		controllers.NewHealthController(),
		controllers.NewProductController(catalog),
	).Handler())
	t.Cleanup(ginServer.Close)

	echoServer := httptest.NewServer(echoapi.NewServer(catalog).Handler())
	t.Cleanup(echoServer.Close)

	return ginServer.URL, echoServer.URL
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestFetch(t *testing.T) {
	ginURL, echoURL := startDeployments(t)

	t.Run("lists products from gin", func(t *testing.T) {
		c := qt.New(t)
		out, err := execute(t, "fetch", "--url", ginURL)
		c.Assert(err, qt.IsNil)
		c.Assert(out, qt.Contains, "Gin API: Products retrieved successfully (5)")
		c.Assert(out, qt.Contains, "Laptop Pro 15")
		c.Assert(out, qt.Contains, "1299.99")
	})

	t.Run("one product from echo", func(t *testing.T) {
		c := qt.New(t)
		out, err := execute(t, "fetch", "--backend", "echo", "--url", echoURL+"/api", "--id", "1")
		c.Assert(err, qt.IsNil)
		c.Assert(out, qt.Contains, "Echo API: Product retrieved successfully")
		c.Assert(out, qt.Matches, `(?s).*name\s+Laptop Pro 15.*`)
		c.Assert(out, qt.Matches, `(?s).*category\s+Electronics.*`)
	})

	t.Run("missing product is a failure", func(t *testing.T) {
		c := qt.New(t)
		out, err := execute(t, "fetch", "--url", ginURL, "--id", "999")
		c.Assert(err, qt.ErrorIs, errRequestFailed)
		c.Assert(out, qt.Contains, "error: Error connecting to Gin API")
		c.Assert(out, qt.Contains, "product 999 does not exist")
	})

	t.Run("unreachable deployment", func(t *testing.T) {
		c := qt.New(t)
		srv := httptest.NewServer(nil)
		url := srv.URL
		srv.Close()

		out, err := execute(t, "fetch", "--backend", "echo", "--url", url)
		c.Assert(err, qt.ErrorIs, errRequestFailed)
		c.Assert(out, qt.Contains, "error: Error connecting to Echo API")
	})

	t.Run("unknown backend", func(t *testing.T) {
		c := qt.New(t)
		_, err := execute(t, "fetch", "--backend", "laravel")
		c.Assert(err, qt.ErrorMatches, `unknown backend "laravel".*`)
	})
}

func TestHealth(t *testing.T) {
	ginURL, echoURL := startDeployments(t)

	c := qt.New(t)
	out, err := execute(t, "health", "--url", ginURL)
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "Gin API is healthy")

	out, err = execute(t, "health", "--backend", "echo", "--url", echoURL)
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "Echo API is healthy")

	_, err = execute(t, "health", "--url", ginURL+"/api")
	c.Assert(err, qt.ErrorMatches, `Gin API is unhealthy: .*`)
}

func TestSeed_RejectsMemoryStore(t *testing.T) {
	c := qt.New(t)
	out, err := execute(t, "seed", "--driver", "memory")
	c.Assert(err, qt.ErrorIs, errVolatileStore)
	c.Assert(out, qt.Not(qt.Contains), "inserted")

	t.Setenv("STORE_DRIVER", "memory")
	_, err = execute(t, "seed")
	c.Assert(err, qt.ErrorIs, errVolatileStore)
}

func TestResolveBackend(t *testing.T) {
	c := qt.New(t)
	t.Setenv("CATALOG_ECHO_URL", "http://echo.internal:9000/api/")
	settings := newSettings()

	backend, err := resolveBackend(settings, "ECHO", "")
	c.Assert(err, qt.IsNil)
	c.Assert(backend.Name, qt.Equals, "Echo")
	c.Assert(backend.BaseURL, qt.Equals, "http://echo.internal:9000/api")

	backend, err = resolveBackend(settings, "gin", "http://127.0.0.1:1234/")
	c.Assert(err, qt.IsNil)
	c.Assert(backend.BaseURL, qt.Equals, "http://127.0.0.1:1234")

	backend, err = resolveBackend(settings, "gin", "")
	c.Assert(err, qt.IsNil)
	c.Assert(backend.BaseURL, qt.Equals, "http://localhost:8080")
}
