package repository

import (
	"context"

	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByParticipant(ctx context.Context, db *gorm.DB, personID uuid.UUID) ([]entity.Appointment, error)
	FindSchedule(ctx context.Context, db *gorm.DB, filter *entity.ScheduleFilter) ([]entity.Appointment, error)
	Update(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
}
