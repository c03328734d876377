package app

import (
	"context"
	"fmt"

	"github.com/iconplus/catalog/internal/adapters/config"
	"github.com/iconplus/catalog/internal/adapters/memory"
	"github.com/iconplus/catalog/internal/adapters/mongo"
	mongorepo "github.com/iconplus/catalog/internal/adapters/mongo/repository"
	"github.com/iconplus/catalog/internal/adapters/mysql"
	"github.com/iconplus/catalog/internal/adapters/postgres"
	"github.com/iconplus/catalog/internal/core/logger"
	"github.com/iconplus/catalog/internal/core/port"
)

type schemaEnsurer interface {
	EnsureSchema(ctx context.Context) error
}

// OpenStore connects the catalog store selected by cfg.Store.Driver. The
// returned closer releases the connection pool.
func OpenStore(ctx context.Context, cfg *config.Config) (port.CatalogStore, func() error, error) {
	var (
		store  port.CatalogStore
		closer = func() error { return nil }
	)

	switch cfg.Store.Driver {
	case config.DriverMySQL:
		db, err := mysql.NewConnection(cfg.MySQL)
		if err != nil {
			return nil, nil, err
		}
		store, closer = mysql.NewProductRepository(db), db.Close
		logger.Info(ctx, "Connected to MySQL", map[string]any{"database": cfg.MySQL.Database, "host": cfg.MySQL.Host})

	case config.DriverPostgres:
		db, err := postgres.NewConnection(cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		store, closer = postgres.NewProductRepository(db), func() error { return postgres.Close(db) }
		logger.Info(ctx, "Connected to Postgres", nil)

	case config.DriverMongo:
		client, err := mongo.NewConnection(cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		store, closer = mongorepo.NewProductRepository(mongo.Database(client, cfg.Mongo)), func() error { return mongo.Disconnect(client) }
		logger.Info(ctx, "Connected to MongoDB", map[string]any{"database": cfg.Mongo.Database})

	case config.DriverMemory:
		store = memory.NewStore()
		logger.Info(ctx, "Using in-memory catalog", nil)

	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}

	if s, ok := store.(schemaEnsurer); ok {
		if err := s.EnsureSchema(ctx); err != nil {
			_ = closer()
			return nil, nil, fmt.Errorf("ensure schema: %w", err)
		}
	}

	return store, closer, nil
}
