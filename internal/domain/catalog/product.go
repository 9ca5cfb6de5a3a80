// Package catalog holds the plan/product model, customer-specific pricing
// overrides, and the resolver that turns them into price quotes.
package catalog

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/adminsuite/pricing/internal/domain/currency"
	"github.com/adminsuite/pricing/internal/domain/pricing"
)

// ErrProductNotFound is returned when a requested product does not exist.
var ErrProductNotFound = errors.New("product not found")

// Product represents a plan or product offered to customers. Price is the
// undiscounted list price in the home currency; Discount is the product's
// default discount rule, applied to any customer without an override.
type Product struct {
	ID       string
	Code     string
	Name     string
	Category string
	Price    decimal.Decimal
	Currency currency.Code
	Discount pricing.Rule
}

// Repository defines read operations for the product catalog.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	GetByCode(ctx context.Context, code string) (*Product, error)
}
