package repository

import (
	"context"
	"errors"
	"strings"

	"clinic-scheduler/internal/domain/entity"
	domainRepo "clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type personRepository struct{}

func NewPersonRepository() domainRepo.PersonRepository {
	return &personRepository{}
}

func (r *personRepository) Create(ctx context.Context, db *gorm.DB, person *entity.Person) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(person).Error
}

func (r *personRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Person, error) {
	var person entity.Person
	err := db.WithContext(ctx).
		Preload("MedicalProfile.InsuranceRecord").
		Preload("DoctorProfile").
		Preload("EmergencyContact").
		Preload("Facility").
		Where("id = ?", id).
		First(&person).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &person, nil
}

// FindByIDsForUpdate row-locks the given persons in id order so that
// concurrent bookings touching the same people serialize on the database.
func (r *personRepository) FindByIDsForUpdate(ctx context.Context, db *gorm.DB, ids []uuid.UUID) ([]entity.Person, error) {
	var persons []entity.Person
	err := db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&persons).Error
	if err != nil {
		return nil, err
	}
	return persons, nil
}

func (r *personRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.Person, error) {
	var person entity.Person
	err := db.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(email)).First(&person).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &person, nil
}

func (r *personRepository) ExistsByEmail(ctx context.Context, db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&entity.Person{}).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *personRepository) FindByRole(ctx context.Context, db *gorm.DB, role entity.Role, filter *entity.PersonFilter) ([]entity.Person, error) {
	var persons []entity.Person
	query := db.WithContext(ctx).Where("roles LIKE ?", "%"+string(role)+"%")

	if filter != nil {
		if filter.FacilityID != nil {
			query = query.Where("facility_id = ?", *filter.FacilityID)
		}
		if filter.ActiveOnly {
			query = query.Where("is_active = ?", true)
		}
	}

	err := query.Order("last_name ASC, first_name ASC").Find(&persons).Error
	if err != nil {
		return nil, err
	}
	return persons, nil
}

func (r *personRepository) Update(ctx context.Context, db *gorm.DB, person *entity.Person) error {
	return db.WithContext(ctx).Omit(clause.Associations).Save(person).Error
}
