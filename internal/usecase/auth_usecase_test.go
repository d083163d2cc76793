package usecase

import (
	"context"
	"errors"
	"testing"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/testutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	doctor := env.person(t, "doc@example.com", entity.RoleDoctor, entity.RolePatient)

	tokens, err := env.auth.Login(ctx, &dto.LoginRequest{Email: "DOC@example.com", Password: testutil.Password})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, int64(900), tokens.ExpiresIn)

	claims, err := env.jwtService.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, doctor.ID, claims.PersonID)
	assert.Equal(t, []string{"doctor", "patient"}, claims.Roles)
	assert.True(t, env.redis.Exists(AccessTokenKey(doctor.ID, claims.TokenID)))

	assert.Equal(t, []string{"logged in"}, env.auditMessages(t, entity.AuditActionPersonLogin))
}

func TestLoginRejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.person(t, "pat@example.com", entity.RolePatient)
	inactive := env.person(t, "gone@example.com", entity.RolePatient)
	require.NoError(t, env.db.Model(inactive).Update("is_active", false).Error)

	_, err := env.auth.Login(ctx, &dto.LoginRequest{Email: "pat@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.auth.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: testutil.Password})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.auth.Login(ctx, &dto.LoginRequest{Email: "gone@example.com", Password: testutil.Password})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshTokenRotates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	patient := env.person(t, "pat@example.com", entity.RolePatient)

	tokens, err := env.auth.Login(ctx, &dto.LoginRequest{Email: patient.Email, Password: testutil.Password})
	require.NoError(t, err)

	// Roles granted after login show up in the refreshed token.
	patient.Roles = patient.Roles.Add(entity.RoleDoctor)
	require.NoError(t, env.db.Model(patient).Update("roles", patient.Roles).Error)

	refreshed, err := env.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)

	claims, err := env.jwtService.ValidateToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, []string{"doctor", "patient"}, claims.Roles)

	_, err = env.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked, "a refresh token works once")

	_, err = env.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: refreshed.AccessToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = env.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: "garbage"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	patient := env.person(t, "pat@example.com", entity.RolePatient)

	tokens, err := env.auth.Login(ctx, &dto.LoginRequest{Email: patient.Email, Password: testutil.Password})
	require.NoError(t, err)
	access, err := env.jwtService.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	refresh, err := env.jwtService.ValidateToken(tokens.RefreshToken)
	require.NoError(t, err)

	require.NoError(t, env.auth.Logout(ctx, patient.ID, access.TokenID, refresh.TokenID))
	assert.False(t, env.redis.Exists(AccessTokenKey(patient.ID, access.TokenID)))
	assert.False(t, env.redis.Exists(RefreshTokenKey(patient.ID, refresh.TokenID)))

	_, err = env.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestGetCurrentUser(t *testing.T) {
	env := newTestEnv(t)
	patient := env.person(t, "pat@example.com", entity.RolePatient)

	me, err := env.auth.GetCurrentUser(context.Background(), patient.ID)
	require.NoError(t, err)
	assert.Equal(t, patient.Email, me.Email)
	assert.NotNil(t, me.MedicalProfile)

	_, err = env.auth.GetCurrentUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrPersonNotFound)
}

func TestIsDuplicateKeyError(t *testing.T) {
	assert.True(t, isDuplicateKeyError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_persons_email"}, "email"))
	assert.False(t, isDuplicateKeyError(&pgconn.PgError{Code: "23505", ConstraintName: "persons_pkey"}, "email"))
	assert.False(t, isDuplicateKeyError(&pgconn.PgError{Code: "23503", ConstraintName: "idx_persons_email"}, "email"))
	assert.True(t, isDuplicateKeyError(gorm.ErrDuplicatedKey, "email"))
	assert.False(t, isDuplicateKeyError(errors.New("boom"), "email"))
}

func TestAuditLogUsecase(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	patient := env.person(t, "pat@example.com", entity.RolePatient)

	_, err := env.auth.Login(ctx, &dto.LoginRequest{Email: patient.Email, Password: testutil.Password})
	require.NoError(t, err)

	all, err := env.auditLogs.SearchAuditLogs(ctx, &dto.AuditLogQuery{})
	require.NoError(t, err)
	require.Equal(t, int64(1), all.Total)
	require.Len(t, all.Logs, 1)
	assert.Equal(t, 1, all.Page)
	assert.Equal(t, defaultAuditPageSize, all.Limit)
	assert.Equal(t, entity.AuditActionPersonLogin, all.Logs[0].Action)
	assert.Equal(t, "person", all.Logs[0].Entity)
	assert.Equal(t, patient.ID.String(), all.Logs[0].EntityID)
	assert.Equal(t, "logged in", all.Logs[0].Message)

	filtered, err := env.auditLogs.SearchAuditLogs(ctx, &dto.AuditLogQuery{Action: entity.AuditActionAppointmentCreate, Limit: 1000})
	require.NoError(t, err)
	assert.Empty(t, filtered.Logs)
	assert.Equal(t, maxAuditPageSize, filtered.Limit)

	_, err = env.auditLogs.SearchAuditLogs(ctx, &dto.AuditLogQuery{Action: "person.delete"})
	assert.ErrorIs(t, err, ErrUnknownAction)

	got, err := env.auditLogs.GetAuditLog(ctx, all.Logs[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got.Actor)
	assert.Equal(t, patient.ID, got.Actor.ID)

	_, err = env.auditLogs.GetAuditLog(ctx, 9999)
	assert.ErrorIs(t, err, ErrAuditLogNotFound)
}
