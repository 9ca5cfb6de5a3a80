package pricing

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Kind enumerates the supported discount strategies.
type Kind string

const (
	// KindNone applies no discount; the final price equals the base price.
	KindNone Kind = "none"
	// KindPercentage subtracts a percentage of the base price, clamped to [0, 100].
	KindPercentage Kind = "percentage"
	// KindFixed subtracts a fixed monetary amount capped at the base price.
	KindFixed Kind = "fixed"
)

// ErrNegativeBasePrice is returned when a caller passes a negative base price.
// Negative bases are a caller contract violation, not a recoverable state.
var ErrNegativeBasePrice = errors.New("base price must not be negative")

var (
	hundred = decimal.NewFromInt(100)
	zero    = decimal.Zero
)

// Breakdown holds the fully resolved result of a discount calculation.
type Breakdown struct {
	BasePrice      decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalPrice     decimal.Decimal
}

// Calculate computes the discount amount and final price for the given base
// price, discount kind, and value.
//
// Percentage values above 100 are clamped to 100, fixed amounts above the
// base price are capped at the base price, and negative values are treated
// as no discount. The final price never goes below zero. Discount amount and
// final price are each rounded to 2 decimal places independently, so the two
// fields are stable no matter which one a caller displays.
func Calculate(basePrice decimal.Decimal, kind Kind, value decimal.Decimal) (Breakdown, error) {
	if basePrice.IsNegative() {
		return Breakdown{}, ErrNegativeBasePrice
	}

	var amount decimal.Decimal
	switch kind {
	case KindPercentage:
		amount = basePrice.Mul(clampPercent(value)).Div(hundred)
	case KindFixed:
		amount = floorAtZero(decimal.Min(value, basePrice))
	case KindNone:
		amount = zero
	default:
		// Unknown kinds fall back to no discount. Older catalog rows may
		// carry an empty or retired discount type.
		amount = zero
	}

	final := floorAtZero(basePrice.Sub(amount))

	return Breakdown{
		BasePrice:      basePrice,
		DiscountAmount: amount.Round(2),
		FinalPrice:     final.Round(2),
	}, nil
}

// clampPercent restricts a percentage value to the [0, 100] range.
func clampPercent(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return zero
	}
	return decimal.Min(v, hundred)
}

// floorAtZero clamps negative values to zero.
func floorAtZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return zero
	}
	return d
}
