package service

import (
	"context"
	"testing"

	"clinic-scheduler/internal/domain/entity"
	domainRepo "clinic-scheduler/internal/domain/repository"
	"clinic-scheduler/internal/repository"
	"clinic-scheduler/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditServiceRecord(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewAuditLogRepository()
	svc := NewAuditService(testutil.NewTestLogger(), repo)
	ctx := context.Background()

	actor := uuid.New()
	created := uuid.New()
	changed := uuid.New()

	svc.Record(ctx, db, &actor,
		CreatedEvent(entity.AuditActionAppointmentCreate, "appointment", created, map[string]interface{}{"duration": 30}),
		ChangedEvent(entity.AuditActionAppointmentChange, "appointment", changed, []string{"date", "duration"}, nil),
		AuditEvent{Action: entity.AuditActionPersonLogin, EntityName: "person", EntityID: actor.String(), Message: "logged in"},
		DeletedEvent(entity.AuditActionAppointmentCancel, "appointment", created, nil),
	)

	logs, total, err := repo.Search(ctx, db, domainRepo.AuditLogFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 4)
	assert.Equal(t, int64(4), total)

	// Newest first.
	messages := make([]interface{}, 0, len(logs))
	for _, l := range logs {
		require.NotNil(t, l.ActorID)
		assert.Equal(t, actor, *l.ActorID)
		messages = append(messages, l.Metadata["message"])
	}
	assert.Equal(t, []interface{}{"deleted", "logged in", "changed: date, duration", "created"}, messages)

	assert.Equal(t, entity.AuditActionAppointmentChange, logs[2].Action)
	assert.Equal(t, changed.String(), logs[2].Metadata["entity_id"])
	assert.Equal(t, []interface{}{"date", "duration"}, logs[2].Metadata["changed"])
}

func TestAuditLogSearchFilters(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewAuditLogRepository()
	svc := NewAuditService(testutil.NewTestLogger(), repo)
	ctx := context.Background()

	alice, bob := uuid.New(), uuid.New()
	for i := 0; i < 3; i++ {
		svc.Record(ctx, db, &alice, CreatedEvent(entity.AuditActionAppointmentCreate, "appointment", uuid.New(), nil))
	}
	svc.Record(ctx, db, &bob, DeletedEvent(entity.AuditActionAppointmentCancel, "appointment", uuid.New(), nil))

	logs, total, err := repo.Search(ctx, db, domainRepo.AuditLogFilter{ActorID: &alice, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, logs, 2)

	logs, total, err = repo.Search(ctx, db, domainRepo.AuditLogFilter{ActorID: &alice, Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, logs, 1)

	logs, total, err = repo.Search(ctx, db, domainRepo.AuditLogFilter{Action: entity.AuditActionAppointmentCancel})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, logs, 1)
	assert.Equal(t, bob, *logs[0].ActorID)
}

func TestChangeMessage(t *testing.T) {
	assert.Equal(t, "changed: date", changeMessage([]string{"date"}))
	assert.Equal(t, "changed: date, patient, duration, doctor", changeMessage([]string{"date", "patient", "duration", "doctor"}))
	assert.Equal(t, "Changed fields.", changeMessage(nil))
}
