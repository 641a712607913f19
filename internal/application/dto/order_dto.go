package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest one draft line on a save-order or draft-estimate payload.
// Quantity is a string so the locale comma separator survives JSON ("1,5").
// Exactly one of UnitPrice or Amount drives the line total; with neither set
// the catalog price applies.
type OrderLineRequest struct {
	ServiceID     string           `json:"service_id,omitempty"`
	MaterialID    string           `json:"material_id,omitempty"`
	CatalogNumber string           `json:"catalog_number,omitempty"`
	Quantity      string           `json:"quantity"`
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
}

// SaveOrderRequest body for POST /api/orders and PUT /api/orders/:id.
type SaveOrderRequest struct {
	ClientID    string             `json:"client_id"`
	VehicleID   string             `json:"vehicle_id"`
	DamageNotes string             `json:"damage_notes,omitempty"`
	OrderDate   string             `json:"order_date,omitempty"` // YYYY-MM-DD
	Services    []OrderLineRequest `json:"services,omitempty"`
	Materials   []OrderLineRequest `json:"materials,omitempty"`
}

// OrderLineResponse a priced line in responses.
type OrderLineResponse struct {
	ID            string          `json:"id"`
	RefID         string          `json:"ref_id"` // service or material id
	Name          string          `json:"name"`
	CatalogNumber string          `json:"catalog_number,omitempty"`
	Unit          string          `json:"unit,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	Amount        decimal.Decimal `json:"amount"`
}

// OrderResponse full order for GET /api/orders/:id.
type OrderResponse struct {
	ID          string              `json:"id"`
	ClientID    string              `json:"client_id"`
	VehicleID   string              `json:"vehicle_id"`
	DamageNotes string              `json:"damage_notes,omitempty"`
	OrderDate   string              `json:"order_date,omitempty"`
	Total       decimal.Decimal     `json:"total"`
	Services    []OrderLineResponse `json:"services"`
	Materials   []OrderLineResponse `json:"materials"`
	CreatedAt   time.Time           `json:"created_at"`
}

// OrderSummaryResponse order row for GET /api/orders.
type OrderSummaryResponse struct {
	ID          string          `json:"id"`
	ClientName  string          `json:"client_name"`
	Vehicle     string          `json:"vehicle"`
	PlateNumber string          `json:"plate_number,omitempty"`
	OrderDate   string          `json:"order_date,omitempty"`
	Total       decimal.Decimal `json:"total"`
}

// EstimateRequest options for estimate generation, shared by the stored-order
// and draft paths. PricingMode is DETAILED (default) or TOTAL_ONLY;
// TotalRepairCost is required only for TOTAL_ONLY. VATRatePercent is a pointer
// so an explicit 0 (zero-rated work) stays distinct from an absent rate, which
// defaults to 23.
type EstimateRequest struct {
	VATRatePercent  *int             `json:"vat_rate_percent,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	PricingMode     string           `json:"pricing_mode,omitempty"`
	TotalRepairCost *decimal.Decimal `json:"total_repair_cost,omitempty"`
}

// DraftEstimateRequest body for POST /api/orders/estimate: a not-yet-saved
// draft plus the estimate options.
type DraftEstimateRequest struct {
	ClientID  string             `json:"client_id"`
	VehicleID string             `json:"vehicle_id"`
	Services  []OrderLineRequest `json:"services,omitempty"`
	Materials []OrderLineRequest `json:"materials,omitempty"`
	EstimateRequest
}
