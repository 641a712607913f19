package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kwisniewski/warsztat-api/internal/domain/pricing"
)

// The worked example from the order form: a 123.45 service twice at 23% VAT.
func TestBreakdown_ServiceLineExample(t *testing.T) {
	b := pricing.Breakdown(dec("246.90"), 23)

	assert.True(t, b.Net.Equal(dec("200.73")), "net = %s", b.Net)
	assert.True(t, b.Tax.Equal(dec("46.17")), "tax = %s", b.Tax)
	assert.True(t, b.Gross.Equal(dec("246.90")), "gross echoes the input")
	assert.True(t, b.Net.Add(b.Tax).Equal(dec("246.90")), "net+tax must equal gross to the cent")
}

func TestBreakdown_ZeroRate(t *testing.T) {
	b := pricing.Breakdown(dec("99.99"), 0)
	assert.True(t, b.Net.Equal(dec("99.99")))
	assert.True(t, b.Tax.Equal(decimal.Zero))
}

// Tax is the remainder gross-net by construction, so additivity holds even
// where rounding net and tax independently would lose or gain a cent.
func TestBreakdown_Additivity(t *testing.T) {
	grosses := []string{"0", "0.01", "0.03", "1", "10.10", "99.99", "123.45", "246.90", "1000000.01"}
	rates := []int{0, 5, 8, 23, 50, 100}
	for _, g := range grosses {
		for _, r := range rates {
			b := pricing.Breakdown(dec(g), r)
			want := pricing.Round2(dec(g))
			assert.True(t, b.Net.Add(b.Tax).Equal(want),
				"gross=%s rate=%d: net(%s)+tax(%s) != round2(gross)(%s)", g, r, b.Net, b.Tax, want)
		}
	}
}

func TestBreakdown_SmallAmountRemainder(t *testing.T) {
	// 0.03 at 23%: net rounds to 0.02, tax must pick up the remaining 0.01.
	b := pricing.Breakdown(dec("0.03"), 23)
	assert.True(t, b.Net.Equal(dec("0.02")))
	assert.True(t, b.Tax.Equal(dec("0.01")))
}
