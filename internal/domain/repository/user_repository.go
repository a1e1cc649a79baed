package repository

import "github.com/benyoung8291/fieldflow-core-sub002/internal/domain/entity"

// UserRepository defines the persistence port for User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.User, error)
	Delete(id string) error
}
