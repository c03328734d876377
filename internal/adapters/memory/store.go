// Package memory keeps the catalog in process memory. It backs local demos
// and tests, and serves the sample set when no database is configured.
package memory

import (
	"context"
	"sync"

	"github.com/iconplus/catalog/internal/core/domain"
	"github.com/iconplus/catalog/internal/core/port"
	"github.com/iconplus/catalog/internal/core/serviceerrors"
)

type Store struct {
	seedMu   sync.Mutex
	mu       sync.RWMutex
	products []*domain.Product
	index    map[domain.ID]int
	nextID   domain.ID
}

var _ port.CatalogStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{index: make(map[domain.ID]int), nextID: 1}
}

func (s *Store) ListAll(_ context.Context) ([]*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Product, len(s.products))
	for i, p := range s.products {
		out[i] = clone(p)
	}
	return out, nil
}

func (s *Store) GetByID(_ context.Context, id domain.ID) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return nil, serviceerrors.NewNotFoundError("product not found")
	}
	return clone(s.products[i]), nil
}

func (s *Store) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.products)), nil
}

// InsertMany assigns ids in insertion order and writes them back onto the
// given products.
func (s *Store) InsertMany(_ context.Context, products []*domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range products {
		p.ID = s.nextID
		s.nextID++
		s.index[p.ID] = len(s.products)
		s.products = append(s.products, clone(p))
	}
	return nil
}

func (s *Store) WithSeedLock(ctx context.Context, fn func(ctx context.Context) error) error {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()
	return fn(ctx)
}

func clone(p *domain.Product) *domain.Product {
	c := *p
	return &c
}
