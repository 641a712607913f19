package repository

import "github.com/kwisniewski/warsztat-api/internal/domain/entity"

// UserRepository persistence port for employee accounts.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
