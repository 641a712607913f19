package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kwisniewski/warsztat-api/internal/domain/pricing"
)

func TestNewLineItem_TotalInvariant(t *testing.T) {
	li := pricing.NewLineItem("Wymiana oleju", "", "szt.", dec("123.45"), dec("2"))

	assert.True(t, li.Total.Equal(dec("246.90")))
	assert.True(t, li.Total.Equal(pricing.Round2(li.UnitPrice.Mul(li.Quantity))))
}

func TestWithUnitPrice_RecomputesTotal(t *testing.T) {
	li := pricing.NewLineItem("Filtr powietrza", "C30195", "szt.", dec("40"), dec("3"))
	updated := li.WithUnitPrice(dec("45.50"))

	assert.True(t, updated.Total.Equal(dec("136.50")))
	// Value semantics: the original line is untouched.
	assert.True(t, li.Total.Equal(dec("120")))
}

func TestWithUnitPrice_NegativeClampsToZero(t *testing.T) {
	li := pricing.NewLineItem("Usługa", "", "szt.", dec("100"), dec("1"))
	updated := li.WithUnitPrice(dec("-5"))

	assert.True(t, updated.UnitPrice.Equal(decimal.Zero))
	assert.True(t, updated.Total.Equal(decimal.Zero))
}

func TestWithQuantity_UsesPreviousEffectiveUnitPrice(t *testing.T) {
	li := pricing.NewLineItem("Usługa", "", "szt.", dec("123.45"), dec("1"))
	updated := li.WithQuantity(dec("2"))

	// round2(p*q) == round2((oldTotal/oldQty)*q) when p*q was exact to 2dp.
	assert.True(t, updated.Total.Equal(dec("246.90")))
}

func TestWithQuantity_DiscreteClampsToOne(t *testing.T) {
	li := pricing.NewLineItem("Usługa", "", "szt.", dec("80"), dec("2"))

	for _, q := range []string{"0", "-3"} {
		updated := li.WithQuantity(dec(q))
		assert.True(t, updated.Quantity.Equal(dec("1")), "quantity %s must clamp to 1", q)
		assert.True(t, updated.Total.Equal(dec("80")))
	}
}

func TestWithQuantity_ContinuousAllowsFractionsAndZero(t *testing.T) {
	li := pricing.NewLineItem("Olej silnikowy 5W30", "", "l", dec("50.00"), dec("1"))

	frac := li.WithQuantity(dec("1.5"))
	assert.True(t, frac.Quantity.Equal(dec("1.5")))
	assert.True(t, frac.Total.Equal(dec("75")))

	zero := li.WithQuantity(dec("-2"))
	assert.True(t, zero.Quantity.Equal(decimal.Zero), "negative continuous quantity clamps to 0")
	assert.True(t, zero.Total.Equal(decimal.Zero))
}

func TestWithQuantity_FromZeroQuantityFallsBackToUnitPrice(t *testing.T) {
	li := pricing.NewLineItem("Płyn hamulcowy", "", "l", dec("30"), dec("0"))
	assert.True(t, li.Total.Equal(decimal.Zero))

	updated := li.WithQuantity(dec("2"))
	assert.True(t, updated.Total.Equal(dec("60")), "zero-quantity line reprices from the stored unit price")
}

func TestWithTotal_OverridesAndImpliesUnitPrice(t *testing.T) {
	li := pricing.NewLineItem("Naprawa blacharska", "", "szt.", dec("500"), dec("2"))
	updated := li.WithTotal(dec("899.999"))

	assert.True(t, updated.Total.Equal(dec("900")))
	assert.True(t, updated.EffectiveUnitPrice().Equal(dec("450")))
}

// Interleaved edits recompute from oldTotal/oldQuantity on purpose; across
// many edits this can drift by a cent. Pin the behavior so nobody "fixes" it
// silently and changes persisted amounts.
func TestWithQuantity_DocumentedRoundingDrift(t *testing.T) {
	li := pricing.NewLineItem("Usługa", "", "szt.", dec("10"), dec("3"))
	li = li.WithTotal(dec("10.00")) // operator overrides the line total
	li = li.WithQuantity(dec("7"))  // effective unit price 10/3 = 3.333...

	assert.True(t, li.Total.Equal(dec("23.33")), "total = %s", li.Total)
}

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		raw  string
		unit string
		want string
	}{
		{"1,5", "l", "1.5"},
		{"2.75", "l", "2.75"},
		{"-1", "l", "0"},
		{"xyz", "l", "0"},
		{"3", "szt.", "3"},
		{"2,9", "szt.", "2"}, // discrete input truncates
		{"0", "szt.", "1"},
		{"-3", "szt.", "1"},
		{"", "szt.", "1"},
	}
	for _, tc := range cases {
		got := pricing.ParseQuantity(tc.raw, tc.unit)
		assert.True(t, got.Equal(dec(tc.want)), "ParseQuantity(%q, %q) = %s, want %s", tc.raw, tc.unit, got, tc.want)
	}
}

func TestIsContinuousUnit(t *testing.T) {
	assert.True(t, pricing.IsContinuousUnit("l"))
	assert.True(t, pricing.IsContinuousUnit("L"))
	assert.True(t, pricing.IsContinuousUnit(" litr "))
	assert.False(t, pricing.IsContinuousUnit("szt."))
	assert.False(t, pricing.IsContinuousUnit("kpl."))
	assert.False(t, pricing.IsContinuousUnit(""))
}
