package middleware

import (
	"context"
	"net/http"
	"strings"

	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/usecase"
	"clinic-scheduler/pkg/jwt"
	"clinic-scheduler/pkg/response"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type contextKey string

const (
	PersonIDKey    contextKey = "person_id"
	PersonEmailKey contextKey = "person_email"
	RolesKey       contextKey = "roles"
	TokenIDKey     contextKey = "token_id"
)

type AuthMiddleware struct {
	jwtService  *jwt.JWTService
	redisClient *redis.Client
}

func NewAuthMiddleware(jwtService *jwt.JWTService, redisClient *redis.Client) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		redisClient: redisClient,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		// Validate JWT token
		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		// Check if it's an access token
		if claims.TokenType != jwt.AccessToken {
			response.Unauthorized(w, "Invalid token type")
			return
		}

		// Check if token exists in Redis (not revoked)
		exists, err := m.redisClient.Exists(r.Context(), usecase.AccessTokenKey(claims.PersonID, claims.TokenID)).Result()
		if err != nil {
			response.InternalServerError(w, "Failed to validate token")
			return
		}
		if exists == 0 {
			response.Unauthorized(w, "Token has been revoked")
			return
		}

		roles := make([]entity.Role, 0, len(claims.Roles))
		for _, name := range claims.Roles {
			roles = append(roles, entity.Role(name))
		}

		ctx := WithIdentity(r.Context(), claims.PersonID, entity.NewRoleSet(roles...))
		ctx = context.WithValue(ctx, PersonEmailKey, claims.Email)
		ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithIdentity stores the requesting person and their roles in ctx.
func WithIdentity(ctx context.Context, personID uuid.UUID, roles entity.RoleSet) context.Context {
	ctx = context.WithValue(ctx, PersonIDKey, personID)
	return context.WithValue(ctx, RolesKey, roles)
}

// GetPersonIDFromContext extracts person ID from context
func GetPersonIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	personID, ok := ctx.Value(PersonIDKey).(uuid.UUID)
	return personID, ok
}

// GetPersonEmailFromContext extracts person email from context
func GetPersonEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(PersonEmailKey).(string)
	return email, ok
}

// GetTokenIDFromContext extracts token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}

// GetRolesFromContext extracts the role set from context
func GetRolesFromContext(ctx context.Context) (entity.RoleSet, bool) {
	roles, ok := ctx.Value(RolesKey).(entity.RoleSet)
	return roles, ok
}
