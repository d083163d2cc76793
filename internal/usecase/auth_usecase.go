package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clinic-scheduler/internal/converter"
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"
	"clinic-scheduler/internal/service"
	"clinic-scheduler/pkg/jwt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

type AuthUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, personID uuid.UUID, accessTokenID, refreshTokenID string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, personID uuid.UUID) (*dto.PersonResponse, error)
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	personRepo   repository.PersonRepository
	jwtService   *jwt.JWTService
	redisClient  *redis.Client
	auditService service.AuditService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	personRepo repository.PersonRepository,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		personRepo:   personRepo,
		jwtService:   jwtService,
		redisClient:  redisClient,
		auditService: auditService,
	}
}

func AccessTokenKey(personID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("access_token:%s:%s", personID.String(), tokenID)
}

func RefreshTokenKey(personID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("refresh_token:%s:%s", personID.String(), tokenID)
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// Find person by email (read-only, no transaction needed)
	person, err := u.personRepo.FindByEmail(ctx, u.db, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		u.log.Warnf("Failed to find person by email: %+v", err)
		return nil, err
	}
	if person == nil || !person.IsActive {
		return nil, ErrInvalidCredentials
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(person.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tokens, err := u.issueTokens(ctx, person.ID, person.Email, person.Roles.Strings())
	if err != nil {
		return nil, err
	}

	u.auditService.Record(ctx, u.db, &person.ID,
		service.AuditEvent{Action: entity.AuditActionPersonLogin, EntityName: "person", EntityID: person.ID.String(), Message: "logged in"})

	return tokens, nil
}

func (u *authUsecase) Logout(ctx context.Context, personID uuid.UUID, accessTokenID, refreshTokenID string) error {
	keys := []string{AccessTokenKey(personID, accessTokenID)}
	if refreshTokenID != "" {
		keys = append(keys, RefreshTokenKey(personID, refreshTokenID))
	}

	if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
		u.log.Warnf("Failed to delete tokens: %+v", err)
		return err
	}

	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	// Validate refresh token
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	// Check if refresh token exists in Redis
	refreshKey := RefreshTokenKey(claims.PersonID, claims.TokenID)
	exists, err := u.redisClient.Exists(ctx, refreshKey).Result()
	if err != nil {
		u.log.Warnf("Failed to check refresh token in Redis: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrTokenRevoked
	}

	// Delete old refresh token
	if err := u.redisClient.Del(ctx, refreshKey).Err(); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	// Roles may have changed since the token was issued.
	person, err := u.personRepo.FindByID(ctx, u.db, claims.PersonID)
	if err != nil {
		u.log.Warnf("Failed to find person: %+v", err)
		return nil, err
	}
	if person == nil || !person.IsActive {
		return nil, ErrInvalidToken
	}

	return u.issueTokens(ctx, person.ID, person.Email, person.Roles.Strings())
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, personID uuid.UUID) (*dto.PersonResponse, error) {
	person, err := u.personRepo.FindByID(ctx, u.db, personID)
	if err != nil {
		u.log.Warnf("Failed to find person by ID: %+v", err)
		return nil, err
	}
	if person == nil {
		return nil, ErrPersonNotFound
	}

	return converter.PersonToResponse(person), nil
}

func (u *authUsecase) issueTokens(ctx context.Context, personID uuid.UUID, email string, roles []string) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(personID, email, roles)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(personID, email, roles)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	// Store tokens in Redis
	if err := u.redisClient.Set(ctx, AccessTokenKey(personID, accessTokenID), "valid", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return nil, err
	}

	if err := u.redisClient.Set(ctx, RefreshTokenKey(personID, refreshTokenID), "valid", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store refresh token in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

// isDuplicateKeyError checks if the error is a unique constraint violation
// on the specified column or constraint. PostgreSQL errors are matched on
// code and constraint name, translated gorm errors on ErrDuplicatedKey.
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		return pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName))
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
