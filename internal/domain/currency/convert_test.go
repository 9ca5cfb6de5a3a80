package currency

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func snapshot(usd, eur string) Rates {
	return NewRates(map[Code]decimal.Decimal{
		USD: dec(usd),
		EUR: dec(eur),
	}, time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC))
}

func TestToHome(t *testing.T) {
	rates := snapshot("34.50", "37.20")

	tests := []struct {
		name   string
		amount string
		code   Code
		want   string
	}{
		{name: "usd multiplies by rate", amount: "100", code: USD, want: "3450"},
		{name: "eur multiplies by rate", amount: "10", code: EUR, want: "372"},
		{name: "home currency passes through", amount: "250.75", code: TRY, want: "250.75"},
		{name: "empty code passes through", amount: "99", code: "", want: "99"},
		{name: "unrecognized code passes through", amount: "50", code: "GBP", want: "50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToHome(dec(tt.amount), tt.code, rates)
			assert.True(t, dec(tt.want).Equal(got), "expected %s, got %s", tt.want, got)
		})
	}
}

func TestToHome_ZeroRatePassesThrough(t *testing.T) {
	rates := snapshot("0", "37.20")
	got := ToHome(dec("100"), USD, rates)
	assert.True(t, dec("100").Equal(got))
}

func TestFromHome(t *testing.T) {
	rates := snapshot("34.50", "37.20")

	tests := []struct {
		name   string
		amount string
		code   Code
		want   string
	}{
		{name: "usd divides by rate", amount: "3450", code: USD, want: "100"},
		{name: "home currency passes through", amount: "120", code: TRY, want: "120"},
		{name: "unrecognized code passes through", amount: "77.50", code: "CHF", want: "77.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromHome(dec(tt.amount), tt.code, rates)
			assert.True(t, dec(tt.want).Equal(got), "expected %s, got %s", tt.want, got)
		})
	}
}

func TestFromHome_ZeroRateGuard(t *testing.T) {
	// The principal failure mode: the rate feed quotes zero while loading.
	// The amount must come back unchanged, never divided by zero.
	rates := snapshot("0", "0")

	got := FromHome(dec("500"), USD, rates)
	assert.True(t, dec("500").Equal(got))

	got = FromHome(dec("500"), EUR, Rates{})
	assert.True(t, dec("500").Equal(got))
}

func TestConvert_RoundTrip(t *testing.T) {
	rates := snapshot("34.57", "37.23")

	for _, code := range Foreign {
		original := dec("1234.56")
		home := ToHome(original, code, rates)
		back := FromHome(home, code, rates)

		diff := back.Sub(original).Abs()
		assert.True(t, diff.LessThan(dec("0.01")),
			"%s round trip drifted by %s", code, diff)
	}
}

func TestRates_Rate(t *testing.T) {
	rates := snapshot("34.50", "-1")

	assert.True(t, dec("34.50").Equal(rates.Rate(USD)))
	assert.True(t, rates.Rate(EUR).IsZero(), "negative quote should read as absent")
	assert.True(t, rates.Rate("GBP").IsZero())
	assert.True(t, Rates{}.Rate(USD).IsZero())
}
