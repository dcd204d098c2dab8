package service

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// ErrInvalidCredentials is returned for any login failure. It deliberately
// does not distinguish unknown-user from wrong-password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// TokenPair bundles the issued access and refresh tokens.
type TokenPair struct {
	Access          string
	Refresh         string
	AccessExpiresAt time.Time
}

// AuthService coordinates registration, login, and token refresh.
type AuthService struct {
	users         repository.UserRepository
	refreshTokens repository.RefreshTokenStore
	tokenMgr      *auth.TokenManager
	bcryptCost    int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo          repository.UserRepository
	RefreshTokenStore repository.RefreshTokenStore
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:         deps.UserRepo,
		refreshTokens: deps.RefreshTokenStore,
		tokenMgr:      auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes, cfg.Auth.RefreshTokenTTLHours),
		bcryptCost:    cfg.Auth.BcryptCost,
	}
}

// Register creates a new citizen account. The role is always citizen; any
// role supplied by the caller is ignored upstream.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, apperrors.NewValidationError("username already registered", nil)
	} else if !repository.IsNotFound(err) {
		return nil, err
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewValidationError("email already registered", nil)
	} else if !repository.IsNotFound(err) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleCitizen,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates by username and issues a role-bearing token pair.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh rotates a refresh token, revoking the presented one.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokenMgr.ParseToken(refreshToken)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid refresh token")
	}
	if claims.TokenType != auth.TokenTypeRefresh {
		return nil, apperrors.NewUnauthorized("refresh token required")
	}

	userID, err := s.refreshTokens.Get(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return nil, apperrors.NewUnauthorized("refresh token revoked or expired")
		}
		return nil, err
	}
	if userID != claims.Subject {
		return nil, apperrors.NewUnauthorized("refresh token subject mismatch")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewUnauthorized("user not found")
		}
		return nil, err
	}

	if err := s.refreshTokens.Revoke(ctx, claims.ID); err != nil {
		return nil, err
	}
	return s.issuePair(ctx, user)
}

func (s *AuthService) issuePair(ctx context.Context, user *domain.User) (*TokenPair, error) {
	access, accessExp, err := s.tokenMgr.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refresh, jti, _, err := s.tokenMgr.GenerateRefreshToken(user)
	if err != nil {
		return nil, err
	}
	if err := s.refreshTokens.Save(ctx, jti, user.ID, s.tokenMgr.RefreshTTL()); err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh, AccessExpiresAt: accessExp}, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
