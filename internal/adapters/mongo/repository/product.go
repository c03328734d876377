package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/iconplus/catalog/internal/adapters/mongo/document"
	"github.com/iconplus/catalog/internal/core/domain"
	"github.com/iconplus/catalog/internal/core/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	productsCollection = "products"
	countersCollection = "counters"

	seedLockID   = "seed_lock"
	seedLockTTL  = time.Minute
	seedLockPoll = 100 * time.Millisecond
)

type ProductRepository struct {
	*BaseRepository[document.ProductDocument]
	counters *mongo.Collection
}

var _ port.CatalogStore = (*ProductRepository)(nil)

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		BaseRepository: NewBaseRepository[document.ProductDocument](db, productsCollection),
		counters:       db.Collection(countersCollection),
	}
}

func (r *ProductRepository) ListAll(ctx context.Context) ([]*domain.Product, error) {
	docs, err := r.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}

	products := make([]*domain.Product, len(docs))
	for i := range docs {
		product, err := docs[i].ToDomain()
		if err != nil {
			return nil, parseError(fmt.Errorf("decode product %d: %w", docs[i].ID, err))
		}
		products[i] = product
	}

	return products, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id domain.ID) (*domain.Product, error) {
	doc, err := r.FindByID(ctx, int64(id))
	if err != nil {
		return nil, err
	}

	product, err := doc.ToDomain()
	if err != nil {
		return nil, parseError(fmt.Errorf("decode product %d: %w", doc.ID, err))
	}
	return product, nil
}

// InsertMany reserves a contiguous id block from the counters collection,
// then writes the products with those ids.
func (r *ProductRepository) InsertMany(ctx context.Context, products []*domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	last, err := r.reserveIDs(ctx, int64(len(products)))
	if err != nil {
		return err
	}
	first := last - int64(len(products)) + 1

	docs := make([]*document.ProductDocument, len(products))
	for i, p := range products {
		doc, err := document.ToProductDocument(p)
		if err != nil {
			return parseError(fmt.Errorf("encode product %q: %w", p.Name, err))
		}
		doc.ID = first + int64(i)
		docs[i] = doc
	}

	if err := r.BaseRepository.InsertMany(ctx, docs); err != nil {
		return err
	}

	for i, p := range products {
		p.ID = domain.ID(docs[i].ID)
	}
	return nil
}

func (r *ProductRepository) reserveIDs(ctx context.Context, n int64) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter document.CounterDocument
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": productsCollection},
		bson.M{"$inc": bson.M{"seq": n}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, parseError(err)
	}

	return counter.Seq, nil
}

// WithSeedLock claims a lock document in the counters collection. A lock
// older than seedLockTTL belongs to a seeder that died and is cleared.
func (r *ProductRepository) WithSeedLock(ctx context.Context, fn func(ctx context.Context) error) error {
	for {
		now := time.Now()
		_, err := r.counters.InsertOne(ctx, bson.M{"_id": seedLockID, "expires_at": now.Add(seedLockTTL)})
		if err == nil {
			break
		}
		if !mongo.IsDuplicateKeyError(err) {
			return parseError(err)
		}

		stale := bson.M{"_id": seedLockID, "expires_at": bson.M{"$lt": now}}
		if _, err := r.counters.DeleteOne(ctx, stale); err != nil {
			return parseError(err)
		}

		select {
		case <-ctx.Done():
			return parseError(ctx.Err())
		case <-time.After(seedLockPoll):
		}
	}
	defer func() {
		_, _ = r.counters.DeleteOne(context.WithoutCancel(ctx), bson.M{"_id": seedLockID})
	}()

	return fn(ctx)
}
