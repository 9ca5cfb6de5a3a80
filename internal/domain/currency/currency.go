// Package currency converts money amounts between the home currency and the
// supported foreign currencies, and formats amounts for display.
//
// All functions are pure: exchange rates are supplied by the caller on every
// call. A zero or missing rate means "not yet available" and conversion
// degrades to pass-through rather than failing.
package currency

import (
	"time"

	"github.com/shopspring/decimal"
)

// Code identifies a currency by its ISO 4217 code.
type Code string

const (
	// TRY is the home currency: every base price is denominated in it.
	TRY Code = "TRY"
	// USD is a supported foreign currency.
	USD Code = "USD"
	// EUR is a supported foreign currency.
	EUR Code = "EUR"
)

// Home is the currency all base prices are stored in.
const Home = TRY

// Foreign lists the currencies a rate snapshot may quote.
var Foreign = []Code{USD, EUR}

// Supported reports whether the code is a currency this engine recognizes.
func Supported(code Code) bool {
	if code == Home {
		return true
	}
	for _, c := range Foreign {
		if c == code {
			return true
		}
	}
	return false
}

// Rates is a snapshot of exchange rates, expressed as home units per one
// foreign unit. The zero value is a valid "nothing loaded yet" snapshot.
type Rates struct {
	Quotes    map[Code]decimal.Decimal
	FetchedAt time.Time
}

// NewRates builds a snapshot from the given quotes.
func NewRates(quotes map[Code]decimal.Decimal, fetchedAt time.Time) Rates {
	return Rates{Quotes: quotes, FetchedAt: fetchedAt}
}

// Rate returns the quoted rate for the code, or zero when the snapshot has
// no usable quote. Non-positive quotes count as absent.
func (r Rates) Rate(code Code) decimal.Decimal {
	q, ok := r.Quotes[code]
	if !ok || !q.IsPositive() {
		return decimal.Zero
	}
	return q
}
