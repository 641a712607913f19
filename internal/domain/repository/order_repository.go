package repository

import "github.com/kwisniewski/warsztat-api/internal/domain/entity"

// OrderRepository persistence port for repair orders and their lines.
// Line rows are replaced wholesale on every save (delete + insert), so the
// write methods are meant to run inside one transaction via the TxRunner.
type OrderRepository interface {
	Create(order *entity.Order) error
	Update(order *entity.Order) error
	Delete(id string) error
	GetByID(id string) (*entity.Order, error)
	List(limit, offset int) ([]*entity.OrderSummary, error)

	CreateServiceLine(line *entity.OrderService) error
	CreateMaterialLine(line *entity.OrderMaterial) error
	DeleteLines(orderID string) error
	GetServiceLines(orderID string) ([]*entity.OrderService, error)
	GetMaterialLines(orderID string) ([]*entity.OrderMaterial, error)
}
