package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adminsuite/pricing/internal/domain/currency"
	"github.com/adminsuite/pricing/internal/domain/pricing"
)

// --- Mock implementations ---

type mockProductRepo struct {
	byID   map[string]*Product
	getErr error
}

func (m *mockProductRepo) List(_ context.Context) ([]Product, error) {
	return nil, nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id string) (*Product, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	p, ok := m.byID[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (m *mockProductRepo) GetByCode(_ context.Context, code string) (*Product, error) {
	for _, p := range m.byID {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, ErrProductNotFound
}

type mockOverrideRepo struct {
	byKey   map[string]*Override
	findErr error
}

func (m *mockOverrideRepo) Find(_ context.Context, customerID, productID string) (*Override, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	ov, ok := m.byKey[customerID+"/"+productID]
	if !ok {
		return nil, ErrOverrideNotFound
	}
	return ov, nil
}

func (m *mockOverrideRepo) ListByCustomer(_ context.Context, _ string) ([]Override, error) {
	return nil, nil
}

func (m *mockOverrideRepo) Upsert(_ context.Context, _ *Override) error { return nil }

func (m *mockOverrideRepo) Delete(_ context.Context, _, _ string) error { return nil }

// --- Helpers ---

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var fixedNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func newTestProduct(id string, price string, rule pricing.Rule) Product {
	return Product{
		ID:       id,
		Code:     "PLAN-" + id,
		Name:     "Plan " + id,
		Category: "subscription",
		Price:    dec(price),
		Currency: currency.Home,
		Discount: rule,
	}
}

func activePercent(v string) pricing.Rule {
	return pricing.Rule{Kind: pricing.KindPercentage, Value: dec(v), Active: true}
}

func newResolver(products *mockProductRepo, overrides *mockOverrideRepo) *Resolver {
	r := NewResolver(products, overrides)
	r.now = func() time.Time { return fixedNow }
	return r
}

// --- Pure resolution ---

func TestResolveCustomerPrice_DefaultRule(t *testing.T) {
	p := newTestProduct("p1", "24000", activePercent("10"))

	q, err := ResolveCustomerPrice(p, "c1", nil, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, SourceDefault, q.Source)
	assert.True(t, dec("2400.00").Equal(q.DiscountAmount))
	assert.True(t, dec("21600.00").Equal(q.FinalPrice))
	assert.Equal(t, currency.Home, q.Currency)
}

func TestResolveCustomerPrice_OverrideWins(t *testing.T) {
	p := newTestProduct("p1", "24000", activePercent("10"))
	overrides := []Override{
		{
			ID:         "ov1",
			CustomerID: "c1",
			ProductID:  "p1",
			Price:      dec("18000"),
			Discount:   pricing.Rule{Kind: pricing.KindFixed, Value: dec("1000"), Active: true},
		},
	}

	q, err := ResolveCustomerPrice(p, "c1", overrides, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, SourceOverride, q.Source)
	assert.True(t, dec("18000").Equal(q.BasePrice))
	assert.True(t, dec("1000.00").Equal(q.DiscountAmount))
	assert.True(t, dec("17000.00").Equal(q.FinalPrice))
}

func TestResolveCustomerPrice_OverrideForOtherCustomerIgnored(t *testing.T) {
	p := newTestProduct("p1", "1000", activePercent("20"))
	overrides := []Override{
		{CustomerID: "someone-else", ProductID: "p1", Price: dec("1")},
	}

	q, err := ResolveCustomerPrice(p, "c1", overrides, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, SourceDefault, q.Source)
	assert.True(t, dec("800.00").Equal(q.FinalPrice))
}

func TestResolveCustomerPrice_ExpiredOverrideRuleKeepsOverridePrice(t *testing.T) {
	// Precedence is on the override record: an expired rule removes the
	// discount but keeps the negotiated base price.
	expired := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
	p := newTestProduct("p1", "24000", activePercent("10"))
	overrides := []Override{
		{
			CustomerID: "c1",
			ProductID:  "p1",
			Price:      dec("18000"),
			Discount: pricing.Rule{
				Kind:       pricing.KindPercentage,
				Value:      dec("50"),
				Active:     true,
				ValidUntil: &expired,
			},
		},
	}

	q, err := ResolveCustomerPrice(p, "c1", overrides, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, SourceOverride, q.Source)
	assert.True(t, q.DiscountAmount.IsZero())
	assert.True(t, dec("18000.00").Equal(q.FinalPrice))
}

func TestResolveCustomerPrice_InactiveDefaultRule(t *testing.T) {
	rule := activePercent("30")
	rule.Active = false
	p := newTestProduct("p1", "500", rule)

	q, err := ResolveCustomerPrice(p, "c1", nil, fixedNow)
	require.NoError(t, err)

	assert.True(t, q.DiscountAmount.IsZero())
	assert.True(t, dec("500.00").Equal(q.FinalPrice))
}

// --- Resolver service ---

func TestResolver_Quote(t *testing.T) {
	p := newTestProduct("p1", "1500", activePercent("10"))
	products := &mockProductRepo{byID: map[string]*Product{"p1": &p}}
	overrides := &mockOverrideRepo{byKey: map[string]*Override{
		"c2/p1": {
			CustomerID: "c2",
			ProductID:  "p1",
			Price:      dec("1200"),
			Discount:   pricing.Rule{Kind: pricing.KindNone, Active: true},
		},
	}}
	r := newResolver(products, overrides)

	t.Run("default pricing", func(t *testing.T) {
		q, err := r.Quote(context.Background(), "p1", "c1")
		require.NoError(t, err)
		assert.Equal(t, SourceDefault, q.Source)
		assert.True(t, dec("1350.00").Equal(q.FinalPrice))
	})

	t.Run("override pricing", func(t *testing.T) {
		q, err := r.Quote(context.Background(), "p1", "c2")
		require.NoError(t, err)
		assert.Equal(t, SourceOverride, q.Source)
		assert.True(t, dec("1200.00").Equal(q.FinalPrice))
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := r.Quote(context.Background(), "nope", "c1")
		require.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("override store failure propagates", func(t *testing.T) {
		broken := newResolver(products, &mockOverrideRepo{findErr: errors.New("db down")})
		_, err := broken.Quote(context.Background(), "p1", "c1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "find override")
	})
}

func TestResolver_QuoteInCurrency(t *testing.T) {
	p := newTestProduct("p1", "3450", activePercent("0"))
	products := &mockProductRepo{byID: map[string]*Product{"p1": &p}}
	r := newResolver(products, &mockOverrideRepo{})

	rates := currency.NewRates(map[currency.Code]decimal.Decimal{
		currency.USD: dec("34.50"),
	}, fixedNow)

	t.Run("converts with a loaded rate", func(t *testing.T) {
		q, err := r.QuoteInCurrency(context.Background(), "p1", "c1", currency.USD, rates)
		require.NoError(t, err)
		assert.Equal(t, currency.USD, q.Currency)
		assert.True(t, dec("100.00").Equal(q.FinalPrice), "got %s", q.FinalPrice)
	})

	t.Run("missing rate leaves home currency", func(t *testing.T) {
		q, err := r.QuoteInCurrency(context.Background(), "p1", "c1", currency.EUR, rates)
		require.NoError(t, err)
		assert.Equal(t, currency.Home, q.Currency)
		assert.True(t, dec("3450.00").Equal(q.FinalPrice))
	})

	t.Run("home currency requested", func(t *testing.T) {
		q, err := r.QuoteInCurrency(context.Background(), "p1", "c1", currency.Home, rates)
		require.NoError(t, err)
		assert.Equal(t, currency.Home, q.Currency)
	})
}
