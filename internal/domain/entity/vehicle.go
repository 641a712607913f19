package entity

import (
	"strings"
	"time"
)

// Vehicle is a car registered for a client. VIN, plate and year are optional;
// manufacturer and model are required for estimate generation.
type Vehicle struct {
	ID           string
	VIN          string
	PlateNumber  string
	Manufacturer string
	Model        string
	Year         int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName is "Manufacturer Model" for lists and documents.
func (v Vehicle) DisplayName() string {
	return strings.TrimSpace(v.Manufacturer + " " + v.Model)
}

// HasCompleteIdentity reports whether manufacturer and model are filled in.
func (v Vehicle) HasCompleteIdentity() bool {
	return trimmedNonEmpty(v.Manufacturer) && trimmedNonEmpty(v.Model)
}

func trimmedNonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}
