package directory

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kwisniewski/warsztat-api/internal/application/dto"
	"github.com/kwisniewski/warsztat-api/internal/domain"
	"github.com/kwisniewski/warsztat-api/internal/domain/entity"
	"github.com/kwisniewski/warsztat-api/internal/domain/repository"
)

// VehicleUseCase CRUD for vehicles.
type VehicleUseCase struct {
	repo repository.VehicleRepository
}

// NewVehicleUseCase builds the use case.
func NewVehicleUseCase(repo repository.VehicleRepository) *VehicleUseCase {
	return &VehicleUseCase{repo: repo}
}

// Create registers a vehicle. Manufacturer and model are required; a VIN, if
// given, must be unique.
func (uc *VehicleUseCase) Create(in dto.SaveVehicleRequest) (*dto.VehicleResponse, error) {
	manufacturer := strings.TrimSpace(in.Manufacturer)
	model := strings.TrimSpace(in.Model)
	if manufacturer == "" || model == "" {
		return nil, domain.ErrInvalidInput
	}
	vin := strings.ToUpper(strings.TrimSpace(in.VIN))
	if vin != "" {
		existing, _ := uc.repo.GetByVIN(vin)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now()
	vehicle := &entity.Vehicle{
		ID:           uuid.New().String(),
		VIN:          vin,
		PlateNumber:  strings.ToUpper(strings.TrimSpace(in.PlateNumber)),
		Manufacturer: manufacturer,
		Model:        model,
		Year:         in.Year,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(vehicle); err != nil {
		return nil, err
	}
	return toVehicleResponse(vehicle), nil
}

// GetByID fetches a single vehicle.
func (uc *VehicleUseCase) GetByID(id string) (*dto.VehicleResponse, error) {
	vehicle, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, domain.ErrNotFound
	}
	return toVehicleResponse(vehicle), nil
}

// List returns vehicles, newest first.
func (uc *VehicleUseCase) List(limit, offset int) ([]*dto.VehicleResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.VehicleResponse, 0, len(list))
	for _, v := range list {
		out = append(out, toVehicleResponse(v))
	}
	return out, nil
}

// Update overwrites a vehicle's details.
func (uc *VehicleUseCase) Update(id string, in dto.SaveVehicleRequest) (*dto.VehicleResponse, error) {
	vehicle, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, domain.ErrNotFound
	}
	manufacturer := strings.TrimSpace(in.Manufacturer)
	model := strings.TrimSpace(in.Model)
	if manufacturer == "" || model == "" {
		return nil, domain.ErrInvalidInput
	}
	vehicle.VIN = strings.ToUpper(strings.TrimSpace(in.VIN))
	vehicle.PlateNumber = strings.ToUpper(strings.TrimSpace(in.PlateNumber))
	vehicle.Manufacturer = manufacturer
	vehicle.Model = model
	vehicle.Year = in.Year
	vehicle.UpdatedAt = time.Now()
	if err := uc.repo.Update(vehicle); err != nil {
		return nil, err
	}
	return toVehicleResponse(vehicle), nil
}

// Delete removes a vehicle.
func (uc *VehicleUseCase) Delete(id string) error {
	vehicle, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if vehicle == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toVehicleResponse(v *entity.Vehicle) *dto.VehicleResponse {
	return &dto.VehicleResponse{
		ID:           v.ID,
		VIN:          v.VIN,
		PlateNumber:  v.PlateNumber,
		Manufacturer: v.Manufacturer,
		Model:        v.Model,
		Year:         v.Year,
	}
}
