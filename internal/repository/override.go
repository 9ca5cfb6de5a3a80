package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adminsuite/pricing/internal/domain/catalog"
	"github.com/adminsuite/pricing/internal/domain/pricing"
)

const (
	findOverrideSQL = `SELECT id, customer_id, product_id, price,
		discount_kind, discount_value, discount_valid_from, discount_valid_until, discount_active, updated_at
		FROM price_overrides WHERE customer_id = $1 AND product_id = $2`

	listOverridesByCustomerSQL = `SELECT id, customer_id, product_id, price,
		discount_kind, discount_value, discount_valid_from, discount_valid_until, discount_active, updated_at
		FROM price_overrides WHERE customer_id = $1 ORDER BY product_id`

	upsertOverrideSQL = `INSERT INTO price_overrides
		(id, customer_id, product_id, price, discount_kind, discount_value,
		 discount_valid_from, discount_valid_until, discount_active, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		ON CONFLICT (customer_id, product_id) DO UPDATE SET
			price = EXCLUDED.price,
			discount_kind = EXCLUDED.discount_kind,
			discount_value = EXCLUDED.discount_value,
			discount_valid_from = EXCLUDED.discount_valid_from,
			discount_valid_until = EXCLUDED.discount_valid_until,
			discount_active = EXCLUDED.discount_active,
			updated_at = now()`

	deleteOverrideSQL = `DELETE FROM price_overrides WHERE customer_id = $1 AND product_id = $2`
)

var _ catalog.OverrideRepository = (*OverrideRepository)(nil)

// OverrideRepository implements catalog.OverrideRepository backed by PostgreSQL.
type OverrideRepository struct {
	pool *pgxpool.Pool
}

// NewOverrideRepository returns an OverrideRepository that uses the given pool.
func NewOverrideRepository(pool *pgxpool.Pool) *OverrideRepository {
	return &OverrideRepository{pool: pool}
}

// Find returns the override for a customer/product pair.
// Returns catalog.ErrOverrideNotFound when none exists.
func (r *OverrideRepository) Find(ctx context.Context, customerID, productID string) (*catalog.Override, error) {
	rows, err := r.pool.Query(ctx, findOverrideSQL, customerID, productID)
	if err != nil {
		return nil, fmt.Errorf("finding override for customer %q product %q: %w", customerID, productID, err)
	}

	ov, err := pgx.CollectExactlyOneRow(rows, scanOverride)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrOverrideNotFound
		}
		return nil, fmt.Errorf("finding override for customer %q product %q: %w", customerID, productID, err)
	}
	return &ov, nil
}

// ListByCustomer returns all overrides negotiated for the given customer.
func (r *OverrideRepository) ListByCustomer(ctx context.Context, customerID string) ([]catalog.Override, error) {
	rows, err := r.pool.Query(ctx, listOverridesByCustomerSQL, customerID)
	if err != nil {
		return nil, fmt.Errorf("listing overrides for customer %q: %w", customerID, err)
	}
	return pgx.CollectRows(rows, scanOverride)
}

// Upsert creates or replaces the override for its customer/product pair.
// A missing ID is assigned here.
func (r *OverrideRepository) Upsert(ctx context.Context, o *catalog.Override) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}

	_, err := r.pool.Exec(ctx, upsertOverrideSQL,
		o.ID, o.CustomerID, o.ProductID, o.Price,
		string(o.Discount.Kind), o.Discount.Value,
		o.Discount.ValidFrom, o.Discount.ValidUntil, o.Discount.Active,
	)
	if err != nil {
		return fmt.Errorf("upserting override for customer %q product %q: %w", o.CustomerID, o.ProductID, err)
	}
	return nil
}

// Delete removes the override for a customer/product pair.
// Returns catalog.ErrOverrideNotFound when none existed.
func (r *OverrideRepository) Delete(ctx context.Context, customerID, productID string) error {
	tag, err := r.pool.Exec(ctx, deleteOverrideSQL, customerID, productID)
	if err != nil {
		return fmt.Errorf("deleting override for customer %q product %q: %w", customerID, productID, err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrOverrideNotFound
	}
	return nil
}

func scanOverride(row pgx.CollectableRow) (catalog.Override, error) {
	var (
		ov         catalog.Override
		kind       string
		validFrom  *time.Time
		validUntil *time.Time
	)
	err := row.Scan(
		&ov.ID, &ov.CustomerID, &ov.ProductID, &ov.Price,
		&kind, &ov.Discount.Value, &validFrom, &validUntil, &ov.Discount.Active,
		&ov.UpdatedAt,
	)
	ov.Discount.Kind = pricing.Kind(kind)
	ov.Discount.ValidFrom = validFrom
	ov.Discount.ValidUntil = validUntil
	return ov, err
}
