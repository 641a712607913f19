// Package pricing contains the money math behind repair orders: rounding,
// VAT breakdown of gross amounts, line-item recomputation and order totals.
// Everything here is pure; persistence and rendering live elsewhere.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 rounds to 2 decimal places, half away from zero. This is the single
// rounding rule for all displayed and persisted amounts. Not banker's
// rounding: 0.005 rounds to 0.01.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ParseAmount parses a money amount entered by hand. A comma decimal
// separator is accepted and normalized to a dot. Unparseable input yields 0;
// callers never see an error from a price field.
func ParseAmount(raw string) decimal.Decimal {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
