package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/club-service/internal/auth"
	"github.com/spec-kit/club-service/internal/config"
	"github.com/spec-kit/club-service/internal/domain"
	"github.com/spec-kit/club-service/internal/repository"
	apperrors "github.com/spec-kit/club-service/pkg/util/errorutil"
)

// AuthService coordinates login and self-service profile updates.
type AuthService struct {
	users    repository.UserRepository
	tokenMgr *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:    users,
		tokenMgr: auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
	}
}

// LoginUser authenticates by email and password. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("Credenciales inválidas")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("Credenciales inválidas")
	}
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return user, token, exp, nil
}

// UpdateProfile applies a partial self-service profile update.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, update repository.UserProfileUpdate) error {
	if err := s.users.UpdateProfile(ctx, userID, update); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("usuario", map[string]any{"userId": userID})
		}
		return apperrors.MapError(err)
	}
	return nil
}
