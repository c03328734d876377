package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iconplus/catalog/internal/core/domain"
	"github.com/iconplus/catalog/internal/core/port"
	"github.com/iconplus/catalog/internal/core/serviceerrors"
	"github.com/shopspring/decimal"
)

const createTableQuery = `
CREATE TABLE IF NOT EXISTS products (
	id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	description TEXT,
	price DECIMAL(10,2) NOT NULL,
	quantity INT NOT NULL DEFAULT 0,
	category VARCHAR(255),
	created_at TIMESTAMP NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`

const (
	seedLockName    = "catalog_seed"
	seedLockTimeout = 30 * time.Second
)

var errSeedLockTimeout = errors.New("timed out waiting for seed lock")

const selectColumns = `SELECT id, name, description, price, quantity, category, created_at, updated_at FROM products`

type ProductRepository struct {
	db *sql.DB
}

var _ port.CatalogStore = (*ProductRepository)(nil)

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTableQuery); err != nil {
		return parseError(err)
	}
	return nil
}

func (r *ProductRepository) ListAll(ctx context.Context) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY id`)
	if err != nil {
		return nil, parseError(err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, parseError(err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, parseError(err)
	}

	return products, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id domain.ID) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, int64(id))

	product, err := scanProduct(row)
	if err != nil {
		return nil, parseError(err)
	}
	return product, nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, parseError(err)
	}
	return count, nil
}

func (r *ProductRepository) InsertMany(ctx context.Context, products []*domain.Product) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return parseError(err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO products (name, description, price, quantity, category, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return parseError(err)
	}
	defer stmt.Close()

	for _, p := range products {
		res, err := stmt.ExecContext(ctx, p.Name, p.Description, p.Price.StringFixed(2), p.Quantity, p.Category, p.CreatedAt, p.UpdatedAt)
		if err != nil {
			return parseError(fmt.Errorf("insert %q: %w", p.Name, err))
		}
		id, err := res.LastInsertId()
		if err != nil {
			return parseError(err)
		}
		p.ID = domain.ID(id)
	}

	if err := tx.Commit(); err != nil {
		return parseError(err)
	}
	return nil
}

// WithSeedLock holds a named server lock on a dedicated connection while fn
// runs on the pool, so the pool needs room for at least one more connection.
func (r *ProductRepository) WithSeedLock(ctx context.Context, fn func(ctx context.Context) error) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return parseError(err)
	}
	defer conn.Close()

	var acquired sql.NullInt64
	err = conn.QueryRowContext(ctx, `SELECT GET_LOCK(?, ?)`, seedLockName, int(seedLockTimeout.Seconds())).Scan(&acquired)
	if err != nil {
		return parseError(err)
	}
	if !acquired.Valid || acquired.Int64 != 1 {
		return serviceerrors.NewUnavailableError("mysql seed lock not acquired", errSeedLockTimeout)
	}
	defer func() {
		_, _ = conn.ExecContext(context.WithoutCancel(ctx), `DO RELEASE_LOCK(?)`, seedLockName)
	}()

	return fn(ctx)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (*domain.Product, error) {
	var (
		p           domain.Product
		id          int64
		description sql.NullString
		price       decimal.Decimal
		category    sql.NullString
		createdAt   sql.NullTime
		updatedAt   sql.NullTime
	)
	if err := s.Scan(&id, &p.Name, &description, &price, &p.Quantity, &category, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	p.ID = domain.ID(id)
	p.Description = description.String
	p.Price = price
	p.Category = category.String
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return &p, nil
}

func parseError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return serviceerrors.NewNotFoundError("product not found")
	}
	return serviceerrors.NewUnavailableError("mysql catalog query failed", err)
}
