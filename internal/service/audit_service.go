package service

import (
	"context"

	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditEvent is one pending audit entry. Usecases collect events while a
// transaction runs and hand them to Record once it has committed.
type AuditEvent struct {
	Action     string
	EntityName string
	EntityID   string
	Message    string
	Changed    []string
	Value      interface{}
}

type AuditService interface {
	LogCreate(ctx context.Context, db *gorm.DB, actorID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error
	LogChange(ctx context.Context, db *gorm.DB, actorID *uuid.UUID, action string, entityName string, entityID string, changed []string, newValue interface{}) error
	LogDelete(ctx context.Context, db *gorm.DB, actorID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error
	// Record writes events one by one. Failures are logged and never returned.
	Record(ctx context.Context, db *gorm.DB, actorID *uuid.UUID, events ...AuditEvent)
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, db *gorm.DB, actorID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	return s.write(ctx, db, actorID, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"message":   "created",
		"new_value": newValue,
	})
}

// LogChange logs an update action with the list of changed fields
func (s *auditService) LogChange(ctx context.Context, db *gorm.DB, actorID *uuid.UUID, action string, entityName string, entityID string, changed []string, newValue interface{}) error {
	return s.write(ctx, db, actorID, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"message":   changeMessage(changed),
		"changed":   changed,
		"new_value": newValue,
	})
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, db *gorm.DB, actorID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error {
	return s.write(ctx, db, actorID, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"message":   "deleted",
		"old_value": oldValue,
	})
}

func (s *auditService) Record(ctx context.Context, db *gorm.DB, actorID *uuid.UUID, events ...AuditEvent) {
	for _, ev := range events {
		var err error
		switch {
		case ev.Message == "created":
			err = s.LogCreate(ctx, db, actorID, ev.Action, ev.EntityName, ev.EntityID, ev.Value)
		case ev.Message == "deleted":
			err = s.LogDelete(ctx, db, actorID, ev.Action, ev.EntityName, ev.EntityID, ev.Value)
		case len(ev.Changed) == 0 && ev.Message != "":
			err = s.write(ctx, db, actorID, ev.Action, entity.JSON{
				"entity":    ev.EntityName,
				"entity_id": ev.EntityID,
				"message":   ev.Message,
			})
		default:
			err = s.LogChange(ctx, db, actorID, ev.Action, ev.EntityName, ev.EntityID, ev.Changed, ev.Value)
		}
		if err != nil {
			s.log.Warnf("Failed to record audit event %s for %s %s: %+v", ev.Action, ev.EntityName, ev.EntityID, err)
		}
	}
}

func (s *auditService) write(ctx context.Context, db *gorm.DB, actorID *uuid.UUID, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(ctx, db, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	s.log.WithFields(logrus.Fields{
		"action":    action,
		"entity":    metadata["entity"],
		"entity_id": metadata["entity_id"],
	}).Info(metadata["message"])

	return nil
}

// CreatedEvent builds the audit event for a newly created entity.
func CreatedEvent(action, entityName string, entityID uuid.UUID, value interface{}) AuditEvent {
	return AuditEvent{Action: action, EntityName: entityName, EntityID: entityID.String(), Message: "created", Value: value}
}

// ChangedEvent builds the audit event for a changed entity.
func ChangedEvent(action, entityName string, entityID uuid.UUID, changed []string, value interface{}) AuditEvent {
	return AuditEvent{Action: action, EntityName: entityName, EntityID: entityID.String(), Message: changeMessage(changed), Changed: changed, Value: value}
}

// DeletedEvent builds the audit event for a removed entity.
func DeletedEvent(action, entityName string, entityID uuid.UUID, value interface{}) AuditEvent {
	return AuditEvent{Action: action, EntityName: entityName, EntityID: entityID.String(), Message: "deleted", Value: value}
}

func changeMessage(changed []string) string {
	if len(changed) == 0 {
		return "Changed fields."
	}
	msg := "changed: "
	for i, f := range changed {
		if i > 0 {
			msg += ", "
		}
		msg += f
	}
	return msg
}
