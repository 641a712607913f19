package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a repair order ("zlecenie"): a client's vehicle, a damage
// description and the priced work. Total is the combined gross amount of all
// lines, recomputed on every save.
type Order struct {
	ID          string
	ClientID    string
	VehicleID   string
	DamageNotes string
	OrderDate   time.Time
	Total       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderService is a persisted service line. Amount is the gross line total;
// the transient unit price used while editing is not stored. Position is the
// line's place on the order form, 0-based within its group.
type OrderService struct {
	ID        string
	OrderID   string
	ServiceID string
	Position  int
	Quantity  decimal.Decimal
	Amount    decimal.Decimal
}

// OrderMaterial is a persisted material line. CatalogNumber is the part
// number the mechanic typed for this particular order, not the catalog's.
type OrderMaterial struct {
	ID            string
	OrderID       string
	MaterialID    string
	CatalogNumber string
	Position      int
	Quantity      decimal.Decimal
	Amount        decimal.Decimal
}

// OrderSummary is an order row joined with client and vehicle identity for
// list views.
type OrderSummary struct {
	Order
	ClientFirstName string
	ClientLastName  string
	Manufacturer    string
	Model           string
	PlateNumber     string
}
