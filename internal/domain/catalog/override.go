package catalog

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/adminsuite/pricing/internal/domain/pricing"
)

// ErrOverrideNotFound is returned when no override exists for a
// customer/product pair.
var ErrOverrideNotFound = errors.New("price override not found")

// Override is a customer-specific price for a product, negotiated by an
// administrator. When present it replaces both the product's list price and
// its default discount rule; it has no lifecycle of its own beyond the
// embedded rule's validity window and explicit deletion.
type Override struct {
	ID         string
	CustomerID string
	ProductID  string
	Price      decimal.Decimal
	Discount   pricing.Rule
	UpdatedAt  time.Time
}

// Matches reports whether the override applies to the given customer/product pair.
func (o Override) Matches(customerID, productID string) bool {
	return o.CustomerID == customerID && o.ProductID == productID
}

// OverrideRepository defines persistence operations for customer price overrides.
type OverrideRepository interface {
	Find(ctx context.Context, customerID, productID string) (*Override, error)
	ListByCustomer(ctx context.Context, customerID string) ([]Override, error)
	Upsert(ctx context.Context, o *Override) error
	Delete(ctx context.Context, customerID, productID string) error
}
