package repository

import (
	"context"
	"errors"

	"clinic-scheduler/internal/domain/entity"
	domainRepo "clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type facilityRepository struct{}

func NewFacilityRepository() domainRepo.FacilityRepository {
	return &facilityRepository{}
}

func (r *facilityRepository) Create(ctx context.Context, db *gorm.DB, facility *entity.Facility) error {
	return db.WithContext(ctx).Create(facility).Error
}

func (r *facilityRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Facility, error) {
	var facility entity.Facility
	err := db.WithContext(ctx).Where("id = ?", id).First(&facility).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &facility, nil
}

func (r *facilityRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Facility, error) {
	var facilities []entity.Facility
	err := db.WithContext(ctx).Order("name ASC").Find(&facilities).Error
	if err != nil {
		return nil, err
	}
	return facilities, nil
}
