package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// TaxBreakdown splits a gross (VAT-inclusive) amount into its net and tax
// parts. Derived on demand, never stored.
type TaxBreakdown struct {
	Net   decimal.Decimal
	Tax   decimal.Decimal
	Gross decimal.Decimal
}

// Breakdown derives net and tax from a gross amount and a VAT rate in
// percent. Tax is computed as the remainder gross-net, not rounded
// independently, so Net+Tax always equals Round2(gross) to the cent.
// The rate is expected in [0,100]; the UI clamps entry and this function does
// not re-check it.
func Breakdown(gross decimal.Decimal, ratePercent int) TaxBreakdown {
	net := Round2(gross.Mul(hundred).Div(hundred.Add(decimal.NewFromInt(int64(ratePercent)))))
	tax := Round2(gross.Sub(net))
	return TaxBreakdown{Net: net, Tax: tax, Gross: gross}
}
