package repository

import (
	"context"
	"time"

	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLogFilter narrows an audit log search. Zero values match everything;
// a zero Limit returns every matching row.
type AuditLogFilter struct {
	ActorID *uuid.UUID
	Action  string
	Since   *time.Time
	Limit   int
	Offset  int
}

type AuditLogRepository interface {
	Create(ctx context.Context, db *gorm.DB, log *entity.AuditLog) error
	Search(ctx context.Context, db *gorm.DB, filter AuditLogFilter) ([]entity.AuditLog, int64, error)
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.AuditLog, error)
}
