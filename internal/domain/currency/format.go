package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// symbol placement differs per currency: the lira sign trails the amount the
// way the console has always rendered it, dollar and euro lead.
var symbols = map[Code]string{
	TRY: "₺",
	USD: "$",
	EUR: "€",
}

// Format renders an amount as a display string with the currency's symbol,
// thousands separators, and two decimal places. Unrecognized codes render as
// the home currency.
//
//	Format(dec("1234.5"), TRY) == "1.234,50 ₺"
//	Format(dec("99.9"), USD)   == "$99.90"
func Format(amount decimal.Decimal, code Code) string {
	if !Supported(code) || code == "" {
		code = Home
	}

	neg := amount.IsNegative()
	fixed := amount.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}

	switch code {
	case TRY:
		// Turkish convention: dot for thousands, comma for decimals, symbol after.
		b.WriteString(groupThousands(whole, '.'))
		b.WriteByte(',')
		b.WriteString(frac)
		b.WriteByte(' ')
		b.WriteString(symbols[code])
	default:
		b.WriteString(symbols[code])
		b.WriteString(groupThousands(whole, ','))
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// groupThousands inserts sep between every three digits of an unsigned
// integer string, counting from the right.
func groupThousands(digits string, sep byte) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	var b strings.Builder
	b.Grow(n + n/3)
	lead := n % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
