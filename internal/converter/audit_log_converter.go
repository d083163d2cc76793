package converter

import (
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
)

// AuditLogToResponse lifts the entity reference and message out of the
// metadata so clients can render the trail without knowing its layout.
func AuditLogToResponse(log *entity.AuditLog) *dto.AuditLogResponse {
	if log == nil {
		return nil
	}

	return &dto.AuditLogResponse{
		ID:        log.ID,
		Actor:     PersonToSummary(log.Actor),
		Action:    log.Action,
		Entity:    metadataString(log.Metadata, "entity"),
		EntityID:  metadataString(log.Metadata, "entity_id"),
		Message:   metadataString(log.Metadata, "message"),
		Metadata:  log.Metadata,
		CreatedAt: log.CreatedAt,
	}
}

func AuditLogsToResponses(logs []entity.AuditLog) []dto.AuditLogResponse {
	responses := make([]dto.AuditLogResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, *AuditLogToResponse(&logs[i]))
	}
	return responses
}

func metadataString(metadata entity.JSON, key string) string {
	if s, ok := metadata[key].(string); ok {
		return s
	}
	return ""
}
