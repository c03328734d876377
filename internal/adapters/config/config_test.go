package config

import (
	"os"
	"testing"
	"time"
)

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	prev, ok := os.LookupEnv(key)
	_ = os.Unsetenv(key)
	t.Cleanup(func() {
		if ok {
			_ = os.Setenv(key, prev)
		}
	})
}

func TestNewConfig_EmptyDriverRejected(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	cfg := NewConfig("catalog-test")
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected empty driver to be rejected")
	}
}

func TestNewConfig_LegacyDriverName(t *testing.T) {
	unsetEnv(t, "STORE_DRIVER")
	t.Setenv("DB_DRIVER", "MySQL")
	cfg := NewConfig("catalog-test")

	if cfg.Store.Driver != DriverMySQL {
		t.Fatalf("expected driver %q, got %q", DriverMySQL, cfg.Store.Driver)
	}
	if cfg.MySQL.Port != "3306" || cfg.MySQL.Database != "laravel" {
		t.Fatalf("unexpected mysql defaults: %+v", cfg.MySQL)
	}
	if cfg.Logger.ServiceName != "catalog-test" {
		t.Fatalf("expected service name default, got %q", cfg.Logger.ServiceName)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestNewConfig_StoreDriverWinsOverLegacy(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("DB_DRIVER", "mysql")

	if got := NewConfig("x").Store.Driver; got != DriverMemory {
		t.Fatalf("expected %q, got %q", DriverMemory, got)
	}
}

func TestNewConfig_Durations(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "750ms")
	t.Setenv("HTTP_WRITE_TIMEOUT", "3")
	t.Setenv("HTTP_IDLE_TIMEOUT", "not-a-duration")

	cfg := NewConfig("x")
	if cfg.HTTP.ReadTimeout != 750*time.Millisecond {
		t.Fatalf("expected 750ms, got %s", cfg.HTTP.ReadTimeout)
	}
	if cfg.HTTP.WriteTimeout != 3*time.Second {
		t.Fatalf("expected 3s, got %s", cfg.HTTP.WriteTimeout)
	}
	if cfg.HTTP.IdleTimeout != 60*time.Second {
		t.Fatalf("expected default 60s, got %s", cfg.HTTP.IdleTimeout)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	cfg := NewConfig("x")

	cfg.Store.Driver = "oracle"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected unsupported driver error")
	}

	cfg.Store.Driver = DriverMemory
	cfg.RateLimit = RateLimitConfig{Enabled: true, Limit: 0, Window: time.Minute}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected rate limit error")
	}

	cfg.RateLimit.Limit = 10
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestHTTPConfig_Addr(t *testing.T) {
	c := HTTPConfig{BindInterface: "0.0.0.0", Port: "8081"}
	if c.Addr() != "0.0.0.0:8081" {
		t.Fatalf("unexpected addr %q", c.Addr())
	}
}
