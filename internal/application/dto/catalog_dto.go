package dto

import "github.com/shopspring/decimal"

// SaveServiceRequest body for POST/PUT /api/services. Price is gross and
// accepts a comma decimal separator ("120,50").
type SaveServiceRequest struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// ServiceResponse catalog service in responses.
type ServiceResponse struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// SaveMaterialRequest body for POST/PUT /api/materials.
type SaveMaterialRequest struct {
	Name  string `json:"name"`
	Unit  string `json:"unit,omitempty"`
	Price string `json:"price"`
}

// MaterialResponse catalog material in responses.
type MaterialResponse struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Unit  string          `json:"unit,omitempty"`
	Price decimal.Decimal `json:"price"`
}
