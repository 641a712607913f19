package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceItem is a catalog entry for labor (e.g. "wymiana oleju"). Price is
// gross, per execution.
type ServiceItem struct {
	ID        string
	Name      string
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Material is a catalog entry for a part or consumable. Unit drives quantity
// semantics: "l" allows fractional quantities, everything else is counted in
// whole units. Price is gross, per unit.
type Material struct {
	ID        string
	Name      string
	Unit      string
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
