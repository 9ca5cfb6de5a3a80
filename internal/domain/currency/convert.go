package currency

import "github.com/shopspring/decimal"

// ToHome converts a foreign amount into the home currency using the given
// snapshot.
//
// An empty, home, or unrecognized code passes the amount through unchanged;
// older catalog records frequently carry no currency at all, so the fallback
// is a documented branch rather than an error. A missing or zero rate
// likewise passes through, consistent with "rates not loaded yet".
func ToHome(amount decimal.Decimal, code Code, rates Rates) decimal.Decimal {
	if code == "" || code == Home || !Supported(code) {
		return amount
	}

	rate := rates.Rate(code)
	if !rate.IsPositive() {
		return amount
	}
	return amount.Mul(rate)
}

// FromHome converts a home-currency amount into the given foreign currency.
//
// The same pass-through rules as ToHome apply. Division only happens when
// the rate is strictly positive: while the rate feed is still loading the
// snapshot quotes zero, and dividing by it would poison every price shown
// on screen with Inf.
func FromHome(amountHome decimal.Decimal, code Code, rates Rates) decimal.Decimal {
	if code == "" || code == Home || !Supported(code) {
		return amountHome
	}

	rate := rates.Rate(code)
	if !rate.IsPositive() {
		return amountHome
	}
	return amountHome.DivRound(rate, 8)
}
