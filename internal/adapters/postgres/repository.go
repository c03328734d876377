package postgres

import (
	"context"
	"errors"

	"github.com/iconplus/catalog/internal/core/domain"
	"github.com/iconplus/catalog/internal/core/port"
	"github.com/iconplus/catalog/internal/core/serviceerrors"
	"gorm.io/gorm"
)

const (
	insertBatchSize = 100
	// seedLockKey is the advisory lock id shared by every seeder.
	seedLockKey int64 = 0x63617461
)

type ProductRepository struct {
	db *gorm.DB
}

var _ port.CatalogStore = (*ProductRepository)(nil)

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) EnsureSchema(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&productModel{}); err != nil {
		return parseError(err)
	}
	return nil
}

func (r *ProductRepository) ListAll(ctx context.Context) ([]*domain.Product, error) {
	var models []productModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, parseError(err)
	}

	products := make([]*domain.Product, 0, len(models))
	for i := range models {
		products = append(products, models[i].toDomain())
	}
	return products, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id domain.ID) (*domain.Product, error) {
	var model productModel
	if err := r.db.WithContext(ctx).First(&model, int64(id)).Error; err != nil {
		return nil, parseError(err)
	}
	return model.toDomain(), nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&productModel{}).Count(&count).Error; err != nil {
		return 0, parseError(err)
	}
	return count, nil
}

func (r *ProductRepository) InsertMany(ctx context.Context, products []*domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	models := make([]*productModel, 0, len(products))
	for _, p := range products {
		m := toProductModel(p)
		m.ID = 0
		models = append(models, m)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(models, insertBatchSize).Error
	})
	if err != nil {
		return parseError(err)
	}

	for i, m := range models {
		products[i].ID = domain.ID(m.ID)
	}
	return nil
}

// WithSeedLock holds a session advisory lock on one pinned connection while
// fn runs on the pool.
func (r *ProductRepository) WithSeedLock(ctx context.Context, fn func(ctx context.Context) error) error {
	var fnErr error
	err := r.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		if err := conn.Exec("SELECT pg_advisory_lock(?)", seedLockKey).Error; err != nil {
			return parseError(err)
		}
		defer func() {
			conn.WithContext(context.WithoutCancel(ctx)).Exec("SELECT pg_advisory_unlock(?)", seedLockKey)
		}()

		fnErr = fn(ctx)
		return nil
	})
	if err != nil {
		return err
	}
	return fnErr
}

func parseError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return serviceerrors.NewNotFoundError("product not found")
	}
	return serviceerrors.NewUnavailableError("postgres catalog query failed", err)
}
