package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestRule_ValidOn(t *testing.T) {
	from := date(2024, time.January, 1)
	until := date(2024, time.December, 31)

	tests := []struct {
		name string
		rule Rule
		asOf time.Time
		want bool
	}{
		{
			name: "inactive rule is never valid",
			rule: Rule{Active: false, ValidFrom: from, ValidUntil: until},
			asOf: time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "inside window",
			rule: Rule{Active: true, ValidFrom: from, ValidUntil: until},
			asOf: time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "lower bound inclusive",
			rule: Rule{Active: true, ValidFrom: from, ValidUntil: until},
			asOf: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "upper bound inclusive",
			rule: Rule{Active: true, ValidFrom: from, ValidUntil: until},
			asOf: time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "one day before window",
			rule: Rule{Active: true, ValidFrom: from, ValidUntil: until},
			asOf: time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "one day after window",
			rule: Rule{Active: true, ValidFrom: from, ValidUntil: until},
			asOf: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "late evening on the last day still valid",
			rule: Rule{Active: true, ValidFrom: from, ValidUntil: until},
			asOf: time.Date(2024, time.December, 31, 23, 59, 59, 0, time.UTC),
			want: true,
		},
		{
			name: "open lower bound",
			rule: Rule{Active: true, ValidUntil: until},
			asOf: time.Date(1999, time.March, 3, 0, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "open upper bound",
			rule: Rule{Active: true, ValidFrom: from},
			asOf: time.Date(2035, time.July, 20, 0, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "no bounds at all",
			rule: Rule{Active: true},
			asOf: time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.ValidOn(tt.asOf))
		})
	}
}

func TestRule_ValidOn_TimezoneBoundary(t *testing.T) {
	// A bound stored at midnight UTC must not leak into the previous or next
	// day when the as-of timestamp carries a non-UTC offset. The comparison
	// uses each timestamp's own calendar date.
	until := date(2024, time.December, 31)
	rule := Rule{Active: true, ValidUntil: until}

	ist := time.FixedZone("UTC+3", 3*60*60)
	// 2024-12-31 23:30 local time is 20:30 UTC; still the 31st locally.
	assert.True(t, rule.ValidOn(time.Date(2024, time.December, 31, 23, 30, 0, 0, ist)))
	// 2025-01-01 01:00 local is 2024-12-31 22:00 UTC, but locally the window has passed.
	assert.False(t, rule.ValidOn(time.Date(2025, time.January, 1, 1, 0, 0, 0, ist)))
}

func TestApply(t *testing.T) {
	asOf := time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)

	t.Run("valid rule discounts", func(t *testing.T) {
		rule := Rule{
			Kind:   KindPercentage,
			Value:  decimal.NewFromInt(25),
			Active: true,
		}
		got, err := Apply(rule, dec("80.00"), asOf)
		require.NoError(t, err)
		assert.True(t, dec("20.00").Equal(got.DiscountAmount))
		assert.True(t, dec("60.00").Equal(got.FinalPrice))
	})

	t.Run("expired rule contributes nothing", func(t *testing.T) {
		rule := Rule{
			Kind:       KindPercentage,
			Value:      decimal.NewFromInt(25),
			Active:     true,
			ValidUntil: date(2024, time.January, 31),
		}
		got, err := Apply(rule, dec("80.00"), asOf)
		require.NoError(t, err)
		assert.True(t, got.DiscountAmount.IsZero())
		assert.True(t, dec("80.00").Equal(got.FinalPrice))
	})

	t.Run("negative base still rejected", func(t *testing.T) {
		rule := Rule{Kind: KindFixed, Value: decimal.NewFromInt(5), Active: true}
		_, err := Apply(rule, dec("-10"), asOf)
		require.ErrorIs(t, err, ErrNegativeBasePrice)
	})
}
