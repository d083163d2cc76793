package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinic-scheduler/config"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/usecase"
	"clinic-scheduler/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(t *testing.T) (*AuthMiddleware, *jwt.JWTService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "secret", AccessExpiry: time.Minute, RefreshExpiry: time.Hour})
	return NewAuthMiddleware(jwtService, client), jwtService, mr
}

func TestAuthenticate(t *testing.T) {
	auth, jwtService, mr := newAuth(t)
	personID := uuid.New()

	token, tokenID, err := jwtService.GenerateAccessToken(personID, "doc@example.com", []string{"doctor"})
	require.NoError(t, err)
	require.NoError(t, mr.Set(usecase.AccessTokenKey(personID, tokenID), "valid"))

	var (
		gotID    uuid.UUID
		gotRoles entity.RoleSet
		gotToken string
	)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = GetPersonIDFromContext(r.Context())
		gotRoles, _ = GetRolesFromContext(r.Context())
		gotToken, _ = GetTokenIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	auth.Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, personID, gotID)
	assert.True(t, gotRoles.Has(entity.RoleDoctor))
	assert.Equal(t, tokenID, gotToken)

	// Revoked once the key is gone.
	mr.Del(usecase.AccessTokenKey(personID, tokenID))
	rec = httptest.NewRecorder()
	auth.Authenticate(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateRejects(t *testing.T) {
	auth, jwtService, mr := newAuth(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	})

	personID := uuid.New()
	refresh, refreshID, err := jwtService.GenerateRefreshToken(personID, "a@example.com", nil)
	require.NoError(t, err)
	require.NoError(t, mr.Set(usecase.AccessTokenKey(personID, refreshID), "valid"))

	for _, header := range []string{"", "Token abc", "Bearer not-a-jwt", "Bearer " + refresh} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		auth.Authenticate(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
	}
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name    string
		roles   *entity.RoleSet
		handler http.Handler
		code    int
	}{
		{"admin allowed", roleSet(entity.RoleAdmin), RequireAdmin(next), http.StatusNoContent},
		{"doctor not admin", roleSet(entity.RoleDoctor), RequireAdmin(next), http.StatusForbidden},
		{"doctor allowed", roleSet(entity.RoleDoctor), RequireAdminOrDoctor(next), http.StatusNoContent},
		{"patient refused", roleSet(entity.RolePatient), RequireAdminOrDoctor(next), http.StatusForbidden},
		{"no identity", nil, RequireAdmin(next), http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.roles != nil {
				req = req.WithContext(WithIdentity(req.Context(), uuid.New(), *tt.roles))
			}
			rec := httptest.NewRecorder()
			tt.handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func roleSet(roles ...entity.Role) *entity.RoleSet {
	s := entity.NewRoleSet(roles...)
	return &s
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })

	tests := []struct {
		name       string
		origins    []string
		method     string
		origin     string
		wantStatus int
		wantAllow  string
	}{
		{"any origin by default", nil, http.MethodGet, "https://a.example", http.StatusTeapot, "*"},
		{"wildcard", []string{"*"}, http.MethodGet, "", http.StatusTeapot, "*"},
		{"listed origin echoed", []string{"https://clinic.example/"}, http.MethodGet, "https://clinic.example", http.StatusTeapot, "https://clinic.example"},
		{"unlisted origin passes through untagged", []string{"https://clinic.example"}, http.MethodGet, "https://evil.example", http.StatusTeapot, ""},
		{"preflight allowed", []string{"https://clinic.example"}, http.MethodOptions, "https://clinic.example", http.StatusNoContent, "https://clinic.example"},
		{"preflight refused", []string{"https://clinic.example"}, http.MethodOptions, "https://evil.example", http.StatusForbidden, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/v1/appointments", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()

			NewCORSMiddleware(tt.origins).Handle(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantAllow, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
