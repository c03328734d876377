package service

import (
	"context"
	"fmt"

	"github.com/iconplus/catalog/internal/core/domain"
	"github.com/iconplus/catalog/internal/core/logger"
	"github.com/iconplus/catalog/internal/core/port"
)

type SeedService struct {
	seeder port.SeederPort
}

func NewSeedService(seeder port.SeederPort) *SeedService {
	return &SeedService{seeder: seeder}
}

// SeedIfEmpty inserts products only when the catalog holds no records and
// returns how many were inserted. The check and the insert run under the
// store's seed lock.
func (s *SeedService) SeedIfEmpty(ctx context.Context, products []*domain.Product) (int, error) {
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return 0, fmt.Errorf("seed product %q: %w", p.Name, err)
		}
	}

	inserted := 0
	err := s.seeder.WithSeedLock(ctx, func(ctx context.Context) error {
		count, err := s.seeder.Count(ctx)
		if err != nil {
			return fmt.Errorf("count products: %w", err)
		}
		if count > 0 {
			logger.Info(ctx, "Products already exist in catalog", map[string]any{"count": count})
			return nil
		}

		if err := s.seeder.InsertMany(ctx, products); err != nil {
			logger.Error(ctx, "seed: insert failed", err, map[string]any{"products": len(products)})
			return fmt.Errorf("insert products: %w", err)
		}
		inserted = len(products)
		return nil
	})
	if err != nil {
		return 0, err
	}

	if inserted > 0 {
		logger.Info(ctx, "Sample products inserted", map[string]any{"count": inserted})
	}
	return inserted, nil
}
