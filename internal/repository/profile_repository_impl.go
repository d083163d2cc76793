package repository

import (
	"context"
	"errors"

	"clinic-scheduler/internal/domain/entity"
	domainRepo "clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Medical Profile Repository

type medicalProfileRepository struct{}

func NewMedicalProfileRepository() domainRepo.MedicalProfileRepository {
	return &medicalProfileRepository{}
}

func (r *medicalProfileRepository) Create(ctx context.Context, db *gorm.DB, profile *entity.MedicalProfile) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(profile).Error
}

func (r *medicalProfileRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.MedicalProfile, error) {
	var profile entity.MedicalProfile
	err := db.WithContext(ctx).Preload("InsuranceRecord").Where("id = ?", id).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *medicalProfileRepository) Update(ctx context.Context, db *gorm.DB, profile *entity.MedicalProfile) error {
	return db.WithContext(ctx).Omit(clause.Associations).Save(profile).Error
}

// Insurance Record Repository

type insuranceRecordRepository struct{}

func NewInsuranceRecordRepository() domainRepo.InsuranceRecordRepository {
	return &insuranceRecordRepository{}
}

func (r *insuranceRecordRepository) Create(ctx context.Context, db *gorm.DB, record *entity.InsuranceRecord) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *insuranceRecordRepository) Update(ctx context.Context, db *gorm.DB, record *entity.InsuranceRecord) error {
	return db.WithContext(ctx).Save(record).Error
}

// Doctor Profile Repository

type doctorProfileRepository struct{}

func NewDoctorProfileRepository() domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{}
}

func (r *doctorProfileRepository) Create(ctx context.Context, db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.WithContext(ctx).Create(profile).Error
}

func (r *doctorProfileRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.WithContext(ctx).Where("id = ?", id).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *doctorProfileRepository) Update(ctx context.Context, db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.WithContext(ctx).Save(profile).Error
}

// Emergency Contact Repository

type emergencyContactRepository struct{}

func NewEmergencyContactRepository() domainRepo.EmergencyContactRepository {
	return &emergencyContactRepository{}
}

func (r *emergencyContactRepository) Create(ctx context.Context, db *gorm.DB, contact *entity.EmergencyContact) error {
	return db.WithContext(ctx).Create(contact).Error
}

func (r *emergencyContactRepository) Update(ctx context.Context, db *gorm.DB, contact *entity.EmergencyContact) error {
	return db.WithContext(ctx).Save(contact).Error
}
