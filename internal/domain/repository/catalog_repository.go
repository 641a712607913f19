package repository

import "github.com/kwisniewski/warsztat-api/internal/domain/entity"

// ServiceRepository persistence port for the labor catalog.
type ServiceRepository interface {
	Create(service *entity.ServiceItem) error
	GetByID(id string) (*entity.ServiceItem, error)
	List(limit, offset int) ([]*entity.ServiceItem, error)
	Update(service *entity.ServiceItem) error
	Delete(id string) error
}

// MaterialRepository persistence port for the parts catalog.
type MaterialRepository interface {
	Create(material *entity.Material) error
	GetByID(id string) (*entity.Material, error)
	List(limit, offset int) ([]*entity.Material, error)
	Update(material *entity.Material) error
	Delete(id string) error
}
