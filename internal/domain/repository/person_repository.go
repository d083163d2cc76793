package repository

import (
	"context"

	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PersonRepository interface {
	Create(ctx context.Context, db *gorm.DB, person *entity.Person) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Person, error)
	FindByIDsForUpdate(ctx context.Context, db *gorm.DB, ids []uuid.UUID) ([]entity.Person, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.Person, error)
	ExistsByEmail(ctx context.Context, db *gorm.DB, email string) (bool, error)
	FindByRole(ctx context.Context, db *gorm.DB, role entity.Role, filter *entity.PersonFilter) ([]entity.Person, error)
	Update(ctx context.Context, db *gorm.DB, person *entity.Person) error
}
