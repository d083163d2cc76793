package repository

import (
	"context"

	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FacilityRepository interface {
	Create(ctx context.Context, db *gorm.DB, facility *entity.Facility) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Facility, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Facility, error)
}
