package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type StoreConfig struct {
	Driver      string
	SeedOnStart bool
}

type MySQLConfig struct {
	User            string
	Password        string
	Host            string
	Port            string
	Database        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Timeout         time.Duration
}

type PostgresConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	Timeout      time.Duration
}

type MongoConfig struct {
	URI                    string
	Database               string
	Timeout                time.Duration
	MaxPoolSize            uint64
	MinPoolSize            uint64
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
}

type RedisConfig struct {
	URL       string
	Password  string
	DB        int
	KeyPrefix string
	Timeout   time.Duration
}

type RateLimitConfig struct {
	Enabled bool
	Limit   int
	Window  time.Duration
}

type HTTPConfig struct {
	Port              string
	BindInterface     string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.BindInterface, c.Port)
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

type LoggerConfig struct {
	Endpoint     string
	ServiceName  string
	Level        string
	IsProduction bool
}

type TracingConfig struct {
	Enabled      bool
	Endpoint     string
	SamplerRatio float64
}

type Config struct {
	Store     StoreConfig
	MySQL     MySQLConfig
	Postgres  PostgresConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	HTTP      HTTPConfig
	Metrics   MetricsConfig
	Logger    LoggerConfig
	Tracing   TracingConfig
}

// NewConfig reads the environment (after loading an optional .env file).
// serviceName is the default OTEL service name for the calling binary.
func NewConfig(serviceName string) *Config {
	_ = godotenv.Load()
	return &Config{
		Store: StoreConfig{
			Driver:      strings.ToLower(getFirstStringEnv([]string{"STORE_DRIVER", "DB_DRIVER"}, DriverMySQL)),
			SeedOnStart: getBoolEnv("SEED_ON_START", true),
		},
		MySQL: MySQLConfig{
			User:            getStringEnv("DB_USER", "root"),
			Password:        getStringEnv("DB_PASSWORD", ""),
			Host:            getStringEnv("DB_HOST", "127.0.0.1"),
			Port:            getStringEnv("DB_PORT", "3306"),
			Database:        getStringEnv("DB_NAME", "laravel"),
			MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", 5*time.Minute, time.Second),
			Timeout:         getDurationEnv("DB_TIMEOUT", 5*time.Second, time.Second),
		},
		Postgres: PostgresConfig{
			DSN:          getStringEnv("POSTGRES_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=catalog port=5432 sslmode=disable"),
			MaxOpenConns: getIntEnv("POSTGRES_MAX_OPEN_CONNS", 20),
			MaxIdleConns: getIntEnv("POSTGRES_MAX_IDLE_CONNS", 5),
			Timeout:      getDurationEnv("POSTGRES_TIMEOUT", 5*time.Second, time.Second),
		},
		Mongo: MongoConfig{
			URI:                    getStringEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:               getStringEnv("MONGO_DATABASE", "catalog"),
			Timeout:                getDurationEnv("MONGO_TIMEOUT", 10*time.Second, time.Second),
			MaxPoolSize:            uint64(getIntEnv("MONGO_MAX_POOL_SIZE", 100)),
			MinPoolSize:            uint64(getIntEnv("MONGO_MIN_POOL_SIZE", 10)),
			ConnectTimeout:         getDurationEnv("MONGO_CONNECT_TIMEOUT", 10*time.Second, time.Second),
			ServerSelectionTimeout: getDurationEnv("MONGO_SERVER_SELECTION_TIMEOUT", 5*time.Second, time.Second),
		},
		Redis: RedisConfig{
			URL:       getStringEnv("REDIS_URL", "redis://localhost:6379"),
			Password:  getStringEnv("REDIS_PASSWORD", ""),
			DB:        getIntEnv("REDIS_DB", 0),
			KeyPrefix: getStringEnv("REDIS_KEY_PREFIX", "catalog"),
			Timeout:   getDurationEnv("REDIS_TIMEOUT", 3*time.Second, time.Second),
		},
		RateLimit: RateLimitConfig{
			Enabled: getBoolEnv("RATE_LIMIT_ENABLED", false),
			Limit:   getIntEnv("RATE_LIMIT_REQUESTS", 120),
			Window:  getDurationEnv("RATE_LIMIT_WINDOW", time.Minute, time.Second),
		},
		HTTP: HTTPConfig{
			Port:              getStringEnv("HTTP_PORT", "8080"),
			BindInterface:     getStringEnv("HTTP_BIND_INTERFACE", "0.0.0.0"),
			ReadHeaderTimeout: getDurationEnv("HTTP_READ_HEADER_TIMEOUT", 5*time.Second, time.Second),
			ReadTimeout:       getDurationEnv("HTTP_READ_TIMEOUT", 10*time.Second, time.Second),
			WriteTimeout:      getDurationEnv("HTTP_WRITE_TIMEOUT", 15*time.Second, time.Second),
			IdleTimeout:       getDurationEnv("HTTP_IDLE_TIMEOUT", 60*time.Second, time.Second),
			ShutdownTimeout:   getDurationEnv("HTTP_SHUTDOWN_TIMEOUT", 5*time.Second, time.Second),
		},
		Metrics: MetricsConfig{
			Enabled: getBoolEnv("METRICS_ENABLED", false),
			Path:    getStringEnv("METRICS_PATH", "/metrics"),
		},
		Logger: LoggerConfig{
			Endpoint:     getStringEnv("OTEL_ENDPOINT", "localhost:4317"),
			ServiceName:  getStringEnv("OTEL_SERVICE_NAME", serviceName),
			Level:        getStringEnv("LOG_LEVEL", "debug"),
			IsProduction: getBoolEnv("IS_PRODUCTION", false),
		},
		Tracing: TracingConfig{
			Enabled:      getBoolEnv("TRACING_ENABLED", false),
			Endpoint:     getStringEnv("OTEL_ENDPOINT", "localhost:4317"),
			SamplerRatio: float64(getIntEnv("TRACING_SAMPLE_PERCENT", 100)) / 100,
		},
	}
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMySQL, DriverPostgres, DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("unsupported store driver %q", c.Store.Driver)
	}
	if c.RateLimit.Enabled && (c.RateLimit.Limit < 1 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("rate limit needs a positive limit and window, got %d per %s", c.RateLimit.Limit, c.RateLimit.Window)
	}
	if c.Tracing.SamplerRatio < 0 || c.Tracing.SamplerRatio > 1 {
		return fmt.Errorf("tracing sample percent must be within 0..100")
	}
	return nil
}
