package port

import (
	"context"

	"github.com/iconplus/catalog/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// CatalogPort is the read side of the catalog store. Implementations return
// serviceerrors kinds: KindNotFound for absent ids, KindUnavailable when the
// backend cannot be reached.
type CatalogPort interface {
	ListAll(ctx context.Context) ([]*domain.Product, error)
	GetByID(ctx context.Context, id domain.ID) (*domain.Product, error)
}

// SeederPort loads the initial record set. It is used out-of-band, before
// the catalog starts serving. WithSeedLock runs fn while holding a lock that
// every seeder of the same store honors, so two seed runs never both see an
// empty catalog.
type SeederPort interface {
	Count(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, products []*domain.Product) error
	WithSeedLock(ctx context.Context, fn func(ctx context.Context) error) error
}

type CatalogStore interface {
	CatalogPort
	SeederPort
}
