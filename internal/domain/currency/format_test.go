package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		code   Code
		want   string
	}{
		{name: "lira with thousands", amount: "1234.5", code: TRY, want: "1.234,50 ₺"},
		{name: "lira small amount", amount: "7", code: TRY, want: "7,00 ₺"},
		{name: "lira millions", amount: "2500000", code: TRY, want: "2.500.000,00 ₺"},
		{name: "dollar", amount: "99.9", code: USD, want: "$99.90"},
		{name: "dollar with thousands", amount: "1234567.89", code: USD, want: "$1,234,567.89"},
		{name: "euro", amount: "42", code: EUR, want: "€42.00"},
		{name: "negative dollar", amount: "-5", code: USD, want: "-$5.00"},
		{name: "unknown code falls back to lira", amount: "10", code: "XXX", want: "10,00 ₺"},
		{name: "empty code falls back to lira", amount: "10", code: "", want: "10,00 ₺"},
		{name: "zero", amount: "0", code: TRY, want: "0,00 ₺"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(dec(tt.amount), tt.code))
		})
	}
}
