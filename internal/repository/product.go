package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adminsuite/pricing/internal/domain/catalog"
	"github.com/adminsuite/pricing/internal/domain/currency"
	"github.com/adminsuite/pricing/internal/domain/pricing"
)

const (
	listProductsSQL = `SELECT id, code, name, category, price, currency,
		discount_kind, discount_value, discount_valid_from, discount_valid_until, discount_active
		FROM products ORDER BY id`

	getProductByIDSQL = `SELECT id, code, name, category, price, currency,
		discount_kind, discount_value, discount_valid_from, discount_valid_until, discount_active
		FROM products WHERE id = $1`

	getProductByCodeSQL = `SELECT id, code, name, category, price, currency,
		discount_kind, discount_value, discount_valid_from, discount_valid_until, discount_active
		FROM products WHERE code = $1`
)

var _ catalog.Repository = (*ProductRepository)(nil)

// ProductRepository implements catalog.Repository backed by PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository that uses the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// List returns all products from the catalog ordered by ID.
func (r *ProductRepository) List(ctx context.Context) ([]catalog.Product, error) {
	rows, err := r.pool.Query(ctx, listProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return pgx.CollectRows(rows, scanProduct)
}

// GetByID returns a single product by its identifier.
// Returns catalog.ErrProductNotFound when no such product exists.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	rows, err := r.pool.Query(ctx, getProductByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting product %q: %w", id, err)
	}

	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, fmt.Errorf("getting product %q: %w", id, err)
	}
	return &p, nil
}

// GetByCode returns a single product by its catalog code.
// Returns catalog.ErrProductNotFound when no such product exists.
func (r *ProductRepository) GetByCode(ctx context.Context, code string) (*catalog.Product, error) {
	rows, err := r.pool.Query(ctx, getProductByCodeSQL, code)
	if err != nil {
		return nil, fmt.Errorf("getting product by code %q: %w", code, err)
	}

	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, fmt.Errorf("getting product by code %q: %w", code, err)
	}
	return &p, nil
}

func scanProduct(row pgx.CollectableRow) (catalog.Product, error) {
	var (
		p          catalog.Product
		curr       string
		kind       string
		validFrom  *time.Time
		validUntil *time.Time
	)
	err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.Category, &p.Price, &curr,
		&kind, &p.Discount.Value, &validFrom, &validUntil, &p.Discount.Active,
	)
	p.Currency = currency.Code(curr)
	p.Discount.Kind = pricing.Kind(kind)
	p.Discount.ValidFrom = validFrom
	p.Discount.ValidUntil = validUntil
	return p, err
}
