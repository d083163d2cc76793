package repository

import (
	"context"

	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicalProfileRepository interface {
	Create(ctx context.Context, db *gorm.DB, profile *entity.MedicalProfile) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.MedicalProfile, error)
	Update(ctx context.Context, db *gorm.DB, profile *entity.MedicalProfile) error
}

type InsuranceRecordRepository interface {
	Create(ctx context.Context, db *gorm.DB, record *entity.InsuranceRecord) error
	Update(ctx context.Context, db *gorm.DB, record *entity.InsuranceRecord) error
}

type DoctorProfileRepository interface {
	Create(ctx context.Context, db *gorm.DB, profile *entity.DoctorProfile) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.DoctorProfile, error)
	Update(ctx context.Context, db *gorm.DB, profile *entity.DoctorProfile) error
}

type EmergencyContactRepository interface {
	Create(ctx context.Context, db *gorm.DB, contact *entity.EmergencyContact) error
	Update(ctx context.Context, db *gorm.DB, contact *entity.EmergencyContact) error
}
