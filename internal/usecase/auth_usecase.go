package usecase

import (
	"context"
	"errors"

	"hospital-scheduling/internal/converter"
	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/domain/repository"
	"hospital-scheduling/internal/service"
	"hospital-scheduling/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, actor entity.Actor, accessTokenID, refreshTokenID string) error
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, actor entity.Actor) (*dto.UserResponse, error)
}

type authUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	userRepo        repository.UserRepository
	profileResolver service.ProfileResolver
	auditService    service.AuditService
	jwtService      *jwt.JWTService
	redisClient     *redis.Client
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	profileResolver service.ProfileResolver,
	auditService service.AuditService,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
) AuthUsecase {
	return &authUsecase{
		db:              db,
		log:             log,
		userRepo:        userRepo,
		profileResolver: profileResolver,
		auditService:    auditService,
		jwtService:      jwtService,
		redisClient:     redisClient,
	}
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// Read-only, no transaction needed
	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
	if err != nil {
		u.log.Errorf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Active() {
		return nil, ErrUserInactive
	}

	tokens, err := u.issueTokens(ctx, user.ID, user.Email, user.RoleID)
	if err != nil {
		return nil, err
	}

	if err := u.auditService.LogEvent(ctx, u.db, &user.ID, entity.AuditActionUserLogin, entity.JSON{
		"entity":    entity.AuditEntityUser,
		"entity_id": user.ID.String(),
	}); err != nil {
		u.log.Warnf("Login of %s not audited: %+v", user.ID, err)
	}

	tokens.User = converter.UserToResponse(user)
	return tokens, nil
}

func (u *authUsecase) Logout(ctx context.Context, actor entity.Actor, accessTokenID, refreshTokenID string) error {
	keys := []string{jwt.AccessTokenKey(actor.UserID, accessTokenID)}
	if refreshTokenID != "" {
		keys = append(keys, jwt.RefreshTokenKey(actor.UserID, refreshTokenID))
	}

	if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
		u.log.Errorf("Failed to delete tokens: %+v", err)
		return err
	}

	if err := u.auditService.LogEvent(ctx, u.db, &actor.UserID, entity.AuditActionUserLogout, entity.JSON{
		"entity":    entity.AuditEntityUser,
		"entity_id": actor.UserID.String(),
	}); err != nil {
		u.log.Warnf("Logout of %s not audited: %+v", actor.UserID, err)
	}

	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	key := jwt.RefreshTokenKey(claims.UserID, claims.TokenID)
	deleted, err := u.redisClient.Del(ctx, key).Result()
	if err != nil {
		u.log.Errorf("Failed to revoke old refresh token: %+v", err)
		return nil, err
	}
	if deleted == 0 {
		return nil, ErrTokenRevoked
	}

	return u.issueTokens(ctx, claims.UserID, claims.Email, claims.Role)
}

// GetCurrentUser returns the user with the profile that matches the role
func (u *authUsecase) GetCurrentUser(ctx context.Context, actor entity.Actor) (*dto.UserResponse, error) {
	db := u.db.WithContext(ctx)

	user, err := u.userRepo.FindByID(db, actor.UserID)
	if err != nil {
		u.log.Errorf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	profile, err := u.profileResolver.Resolve(db, user)
	if err != nil {
		u.log.Errorf("Failed to resolve profile for %s: %+v", user.ID, err)
		return nil, err
	}
	user.DoctorProfile = profile.Doctor
	user.PatientProfile = profile.Patient

	return converter.UserToResponse(user), nil
}

// issueTokens signs a token pair and registers both ids in Redis
func (u *authUsecase) issueTokens(ctx context.Context, userID uuid.UUID, email string, role entity.RoleKind) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(userID, email, role)
	if err != nil {
		u.log.Errorf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(userID, email, role)
	if err != nil {
		u.log.Errorf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	pipe := u.redisClient.TxPipeline()
	pipe.Set(ctx, jwt.AccessTokenKey(userID, accessTokenID), "valid", u.jwtService.GetAccessExpiry())
	pipe.Set(ctx, jwt.RefreshTokenKey(userID, refreshTokenID), "valid", u.jwtService.GetRefreshExpiry())
	if _, err := pipe.Exec(ctx); err != nil {
		u.log.Errorf("Failed to store tokens in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}
