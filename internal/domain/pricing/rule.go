package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rule defines a discount's strategy and the validity window during which it
// may be applied. A nil bound means the window is open on that side.
type Rule struct {
	Kind       Kind
	Value      decimal.Decimal
	ValidFrom  *time.Time
	ValidUntil *time.Time
	Active     bool
}

// ValidOn reports whether the rule may be applied as of the given moment.
//
// The comparison is on calendar dates only, in each timestamp's own location:
// a rule valid until 2024-12-31 still applies at 23:59 that day regardless of
// the time-of-day stored on the bound. Both bounds are inclusive.
func (r Rule) ValidOn(asOf time.Time) bool {
	if !r.Active {
		return false
	}

	day := calendarDay(asOf)
	if r.ValidFrom != nil && day.Before(calendarDay(*r.ValidFrom)) {
		return false
	}
	if r.ValidUntil != nil && day.After(calendarDay(*r.ValidUntil)) {
		return false
	}
	return true
}

// Apply gates Calculate behind the rule's validity window: an inactive rule
// or one outside its window as of asOf contributes no discount.
func Apply(rule Rule, basePrice decimal.Decimal, asOf time.Time) (Breakdown, error) {
	if !rule.ValidOn(asOf) {
		return Calculate(basePrice, KindNone, zero)
	}
	return Calculate(basePrice, rule.Kind, rule.Value)
}

// calendarDay strips the time-of-day, keeping the date as observed in the
// timestamp's own location.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
