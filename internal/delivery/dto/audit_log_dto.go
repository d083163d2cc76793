package dto

import (
	"time"

	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
)

// Request DTOs

// AuditLogQuery is parsed from the query string of GET /admin/audit-logs.
type AuditLogQuery struct {
	ActorID *uuid.UUID
	Action  string
	Since   *time.Time
	Page    int
	Limit   int
}

// Response DTOs

type AuditLogResponse struct {
	ID        int64                  `json:"id"`
	Actor     *PersonSummaryResponse `json:"actor,omitempty"`
	Action    string                 `json:"action"`
	Entity    string                 `json:"entity,omitempty"`
	EntityID  string                 `json:"entity_id,omitempty"`
	Message   string                 `json:"message,omitempty"`
	Metadata  entity.JSON            `json:"metadata"`
	CreatedAt time.Time              `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int64              `json:"total"`
	Page  int                `json:"-"`
	Limit int                `json:"-"`
}
