package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kwisniewski/warsztat-api/internal/domain/pricing"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRound2_HalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.005", "1.01"},
		{"-1.005", "-1.01"},
		{"2.344", "2.34"},
		{"2.345", "2.35"},
		{"0", "0"},
		{"123.4", "123.4"},
	}
	for _, tc := range cases {
		got := pricing.Round2(dec(tc.in))
		assert.True(t, got.Equal(dec(tc.want)), "Round2(%s) = %s, want %s", tc.in, got, tc.want)
	}
}

func TestRound2_Idempotent(t *testing.T) {
	for _, s := range []string{"0.005", "199.999", "-3.1415", "246.90", "0.1"} {
		once := pricing.Round2(dec(s))
		twice := pricing.Round2(once)
		assert.True(t, once.Equal(twice), "Round2 must be idempotent for %s", s)
	}
}

func TestParseAmount(t *testing.T) {
	assert.True(t, pricing.ParseAmount("50.00").Equal(dec("50")))
	assert.True(t, pricing.ParseAmount("49,99").Equal(dec("49.99")), "comma separator must be accepted")
	assert.True(t, pricing.ParseAmount("  120,5 ").Equal(dec("120.5")))
	assert.True(t, pricing.ParseAmount("abc").Equal(decimal.Zero), "garbage input falls back to 0")
	assert.True(t, pricing.ParseAmount("").Equal(decimal.Zero))
}
