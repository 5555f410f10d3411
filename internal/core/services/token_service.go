package services

import (
	"context"
	"fmt"

	"github.com/hammamsawalma/edusystem/internal/apperrors"
	"github.com/hammamsawalma/edusystem/internal/core/domain"
	portssvc "github.com/hammamsawalma/edusystem/internal/core/ports/services"
	"github.com/hammamsawalma/edusystem/internal/utils"
	"github.com/hammamsawalma/edusystem/pkg/config"
)

// tokenService issues and validates the application's JWTs. Access and
// refresh tokens are signed with separate secrets.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new token service.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, int64, error) {
	token, err := utils.GenerateJWT(user.UserID, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", 0, fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, int64(s.cfg.JWTExpiryDuration.Seconds()), nil
}

func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, error) {
	token, err := utils.GenerateRefreshJWT(user.UserID, s.cfg.RefreshTokenSecret, s.cfg.RefreshTokenExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return token, nil
}

func (s *tokenService) ValidateRefreshToken(ctx context.Context, token string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(token, s.cfg.RefreshTokenSecret)
	if err != nil {
		return "", apperrors.NewUnauthorizedError("invalid refresh token")
	}
	if claims.Subject == "" {
		return "", apperrors.NewUnauthorizedError("invalid refresh token")
	}
	return claims.Subject, nil
}
