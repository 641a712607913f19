package pricing

import "github.com/shopspring/decimal"

// SumGross adds up the raw line totals of a group and rounds the sum once.
// Lines are summed as-is, without re-rounding each one first; the per-line
// totals already carry at most two decimals.
func SumGross(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Total)
	}
	return Round2(sum)
}

// CombinedTotal is the grand total of an order: services plus materials.
func CombinedTotal(services, materials []LineItem) decimal.Decimal {
	return Round2(SumGross(services).Add(SumGross(materials)))
}
