package dto

// SaveClientRequest body for POST/PUT /api/clients.
type SaveClientRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
}

// ClientResponse client in responses.
type ClientResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
}

// SaveVehicleRequest body for POST/PUT /api/vehicles.
type SaveVehicleRequest struct {
	VIN          string `json:"vin,omitempty"`
	PlateNumber  string `json:"plate_number,omitempty"`
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	Year         int    `json:"year,omitempty"`
}

// VehicleResponse vehicle in responses.
type VehicleResponse struct {
	ID           string `json:"id"`
	VIN          string `json:"vin,omitempty"`
	PlateNumber  string `json:"plate_number,omitempty"`
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	Year         int    `json:"year,omitempty"`
}
