package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// IsContinuousUnit reports whether a unit allows fractional quantities.
// Liters are continuous; pieces, sets and packages are counted whole.
func IsContinuousUnit(unit string) bool {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "l", "litr", "litry", "litrów":
		return true
	}
	return false
}

// LineItem is one service or material entry on a draft order. All amounts are
// gross (VAT-inclusive). Values are immutable: every edit operation returns a
// new LineItem and leaves the receiver untouched.
type LineItem struct {
	Name          string
	CatalogNumber string
	Unit          string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	Total         decimal.Decimal
}

// NewLineItem builds a line from a catalog price and a quantity. The quantity
// is clamped per unit kind and Total is Round2(price*qty), so the invariant
// Total == Round2(UnitPrice*Quantity) holds at creation.
func NewLineItem(name, catalogNumber, unit string, unitPrice, quantity decimal.Decimal) LineItem {
	if unitPrice.IsNegative() {
		unitPrice = decimal.Zero
	}
	quantity = ClampQuantity(quantity, unit)
	return LineItem{
		Name:          name,
		CatalogNumber: catalogNumber,
		Unit:          unit,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		Total:         Round2(unitPrice.Mul(quantity)),
	}
}

// WithUnitPrice returns the line repriced at a new unit price, recomputing the
// total. A negative price clamps to zero instead of erroring, mirroring how
// the order form behaves.
func (li LineItem) WithUnitPrice(p decimal.Decimal) LineItem {
	if p.IsNegative() {
		p = decimal.Zero
	}
	li.UnitPrice = p
	li.Total = Round2(p.Mul(li.Quantity))
	return li
}

// WithQuantity returns the line with a new quantity. The total is recomputed
// from the previous effective unit price (oldTotal/oldQuantity) rather than
// the stored UnitPrice, so interleaved price and quantity edits do not drift
// apart. Repeated edits can accumulate rounding error of a cent; that is a
// known property of this rule, not a defect.
func (li LineItem) WithQuantity(q decimal.Decimal) LineItem {
	q = ClampQuantity(q, li.Unit)
	effective := li.UnitPrice
	if !li.Quantity.IsZero() {
		effective = li.Total.Div(li.Quantity)
	}
	li.Quantity = q
	li.Total = Round2(effective.Mul(q))
	return li
}

// WithTotal returns the line with the total overridden directly. The unit
// price stays implicit (recoverable as Total/Quantity).
func (li LineItem) WithTotal(t decimal.Decimal) LineItem {
	li.Total = Round2(t)
	return li
}

// EffectiveUnitPrice is the price one unit currently costs on this line,
// derived from the total. Falls back to the stored unit price for a
// zero-quantity line.
func (li LineItem) EffectiveUnitPrice() decimal.Decimal {
	if li.Quantity.IsZero() {
		return li.UnitPrice
	}
	return Round2(li.Total.Div(li.Quantity))
}

// ClampQuantity normalizes a quantity for the given unit: discrete units are
// truncated to whole numbers and floored at 1, continuous units floored at 0.
func ClampQuantity(q decimal.Decimal, unit string) decimal.Decimal {
	if IsContinuousUnit(unit) {
		if q.IsNegative() {
			return decimal.Zero
		}
		return q
	}
	q = q.Truncate(0)
	if q.LessThan(one) {
		return one
	}
	return q
}

// ParseQuantity parses a quantity typed into the order form. Comma decimal
// separators are normalized to dots ("1,5" -> 1.5). Unparseable input falls
// back to 1 for discrete units and 0 for continuous ones, then the usual
// clamping applies.
func ParseQuantity(raw, unit string) decimal.Decimal {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		if IsContinuousUnit(unit) {
			return decimal.Zero
		}
		return one
	}
	return ClampQuantity(d, unit)
}
