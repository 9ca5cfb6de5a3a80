package catalog

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/adminsuite/pricing/internal/domain/currency"
	"github.com/adminsuite/pricing/internal/domain/pricing"
)

// QuoteSource tells which pricing record produced a quote.
type QuoteSource string

const (
	// SourceDefault means the product's own price and discount were used.
	SourceDefault QuoteSource = "default"
	// SourceOverride means a customer-specific override was used.
	SourceOverride QuoteSource = "override"
)

// Quote is a fully resolved price breakdown for one customer and product.
type Quote struct {
	ProductID      string
	CustomerID     string
	BasePrice      decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalPrice     decimal.Decimal
	Currency       currency.Code
	Source         QuoteSource
}

// Display returns the final price formatted in the quote's currency.
func (q Quote) Display() string {
	return currency.Format(q.FinalPrice, q.Currency)
}

// ResolveCustomerPrice computes the price a specific customer pays for a
// product as of the given moment.
//
// The first override matching the customer/product pair wins over the
// product's defaults: its price and its discount rule replace both. An
// override whose rule is inactive or outside its window still supplies the
// negotiated base price, just with no discount. Without an override the
// product's list price and default rule apply.
func ResolveCustomerPrice(p Product, customerID string, overrides []Override, asOf time.Time) (Quote, error) {
	base := p.Price
	rule := p.Discount
	source := SourceDefault

	for _, ov := range overrides {
		if ov.Matches(customerID, p.ID) {
			base = ov.Price
			rule = ov.Discount
			source = SourceOverride
			break
		}
	}

	bd, err := pricing.Apply(rule, base, asOf)
	if err != nil {
		return Quote{}, errors.Wrap(err, "apply discount")
	}

	return Quote{
		ProductID:      p.ID,
		CustomerID:     customerID,
		BasePrice:      bd.BasePrice,
		DiscountAmount: bd.DiscountAmount,
		FinalPrice:     bd.FinalPrice,
		Currency:       currency.Home,
		Source:         source,
	}, nil
}

// Resolver produces quotes from the persisted catalog and override store.
type Resolver struct {
	products  Repository
	overrides OverrideRepository
	now       func() time.Time
}

// NewResolver creates a Resolver with the required repositories.
func NewResolver(products Repository, overrides OverrideRepository) *Resolver {
	return &Resolver{
		products:  products,
		overrides: overrides,
		now:       time.Now,
	}
}

// Quote resolves the price the given customer pays for the given product,
// in the home currency.
func (r *Resolver) Quote(ctx context.Context, productID, customerID string) (*Quote, error) {
	p, err := r.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, errors.Wrap(err, "get product")
	}

	var overrides []Override
	if customerID != "" {
		ov, err := r.overrides.Find(ctx, customerID, productID)
		switch {
		case err == nil:
			overrides = []Override{*ov}
		case errors.Is(err, ErrOverrideNotFound):
			// No negotiated price; product defaults apply.
		default:
			return nil, errors.Wrap(err, "find override")
		}
	}

	q, err := ResolveCustomerPrice(*p, customerID, overrides, r.now())
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// QuoteInCurrency resolves a quote and converts every amount into the
// requested display currency using the supplied rate snapshot. When the
// snapshot has no usable rate for the currency the amounts stay in the home
// currency, and the quote says so.
func (r *Resolver) QuoteInCurrency(ctx context.Context, productID, customerID string, display currency.Code, rates currency.Rates) (*Quote, error) {
	q, err := r.Quote(ctx, productID, customerID)
	if err != nil {
		return nil, err
	}

	if display == "" || display == currency.Home || !currency.Supported(display) {
		return q, nil
	}
	if !rates.Rate(display).IsPositive() {
		return q, nil
	}

	q.BasePrice = currency.FromHome(q.BasePrice, display, rates).Round(2)
	q.DiscountAmount = currency.FromHome(q.DiscountAmount, display, rates).Round(2)
	q.FinalPrice = currency.FromHome(q.FinalPrice, display, rates).Round(2)
	q.Currency = display
	return q, nil
}
