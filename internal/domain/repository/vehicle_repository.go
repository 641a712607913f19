package repository

import "github.com/kwisniewski/warsztat-api/internal/domain/entity"

// VehicleRepository persistence port for vehicles.
type VehicleRepository interface {
	Create(vehicle *entity.Vehicle) error
	GetByID(id string) (*entity.Vehicle, error)
	GetByVIN(vin string) (*entity.Vehicle, error)
	List(limit, offset int) ([]*entity.Vehicle, error)
	Update(vehicle *entity.Vehicle) error
	Delete(id string) error
}
