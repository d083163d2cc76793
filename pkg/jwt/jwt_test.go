package jwt

import (
	"testing"
	"time"

	"clinic-scheduler/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(secret string, accessExpiry time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        secret,
		AccessExpiry:  accessExpiry,
		RefreshExpiry: time.Hour,
	})
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newService("secret", time.Minute)
	personID := uuid.New()

	access, accessID, err := svc.GenerateAccessToken(personID, "doc@example.com", []string{"doctor"})
	require.NoError(t, err)
	refresh, refreshID, err := svc.GenerateRefreshToken(personID, "doc@example.com", []string{"doctor"})
	require.NoError(t, err)
	assert.NotEqual(t, accessID, refreshID)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, personID, claims.PersonID)
	assert.Equal(t, "doc@example.com", claims.Email)
	assert.Equal(t, []string{"doctor"}, claims.Roles)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, accessID, claims.TokenID)

	claims, err = svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestValidateRejects(t *testing.T) {
	svc := newService("secret", time.Minute)
	token, _, err := svc.GenerateAccessToken(uuid.New(), "a@example.com", nil)
	require.NoError(t, err)

	_, err = newService("other-secret", time.Minute).ValidateToken(token)
	assert.Error(t, err)

	expired, _, err := newService("secret", -time.Minute).GenerateAccessToken(uuid.New(), "a@example.com", nil)
	require.NoError(t, err)
	_, err = svc.ValidateToken(expired)
	assert.Error(t, err)

	_, err = svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
