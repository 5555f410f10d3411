package services

import (
	"context"

	"github.com/hammamsawalma/edusystem/internal/core/domain"
	"github.com/hammamsawalma/edusystem/internal/dto"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// UserSvcFacade manages staff accounts.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, actor domain.Actor, req dto.CreateUserRequest) (*domain.User, error)
	// CreateOAuthUser finds or creates the account matching a validated
	// OAuth identity.
	CreateOAuthUser(ctx context.Context, name, email string, provider domain.AuthProvider, providerUserID string, emailVerified bool) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, actor domain.Actor, limit, offset int) ([]domain.User, error)
	ListTeachers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, actor domain.Actor, userID string, req dto.UpdateUserRequest) (*domain.User, error)
	DeleteUser(ctx context.Context, actor domain.Actor, userID string) error
}

// TokenSvcFacade issues and validates application tokens.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (token string, expiresIn int64, err error)
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, error)
	ValidateRefreshToken(ctx context.Context, token string) (userID string, err error)
}

// GoogleOAuthSvcFacade wraps the Google OAuth code exchange and ID token
// validation used by the dashboard's Google sign-in.
type GoogleOAuthSvcFacade interface {
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	ValidateGoogleIDToken(ctx context.Context, rawIDToken string) (*idtoken.Payload, error)
}
