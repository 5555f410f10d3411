package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hammamsawalma/edusystem/internal/apperrors"
	"github.com/hammamsawalma/edusystem/internal/core/domain"
	portsrepo "github.com/hammamsawalma/edusystem/internal/core/ports/repositories"
	portssvc "github.com/hammamsawalma/edusystem/internal/core/ports/services"
	"github.com/hammamsawalma/edusystem/internal/dto"
	"github.com/hammamsawalma/edusystem/internal/utils"
)

// userService manages staff accounts. Account creation is admin-only;
// a user may always read and update their own record.
type userService struct {
	BaseService
	users portsrepo.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(users portsrepo.UserRepository) portssvc.UserSvcFacade {
	return &userService{users: users}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, actor domain.Actor, req dto.CreateUserRequest) (*domain.User, error) {
	if err := s.RequireAdmin(actor); err != nil {
		return nil, err
	}

	if existing, err := s.users.FindUserByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: email %s already registered", apperrors.ErrDuplicate, req.Email)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:        uuid.NewString(),
		Name:          req.Name,
		Email:         req.Email,
		PasswordHash:  hash,
		Role:          domain.Role(req.Role),
		AuthProvider:  domain.ProviderLocal,
		EmailVerified: false,
		HourlyRate:    req.HourlyRate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.ID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.ID,
		},
	}

	if err := s.users.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("email", req.Email))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.LogInfo(ctx, "User created",
		slog.String("user_id", user.UserID),
		slog.String("role", string(user.Role)))
	return &user, nil
}

func (s *userService) CreateOAuthUser(ctx context.Context, name, email string, provider domain.AuthProvider, providerUserID string, emailVerified bool) (*domain.User, error) {
	user, err := s.users.FindUserByProviderID(ctx, provider, providerUserID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	// Link by email if a local account already exists for this address.
	user, err = s.users.FindUserByEmail(ctx, email)
	if err == nil {
		user.AuthProvider = provider
		user.ProviderUserID = providerUserID
		user.EmailVerified = user.EmailVerified || emailVerified
		user.LastUpdatedAt = time.Now()
		user.LastUpdatedBy = user.UserID
		if err := s.users.UpdateUser(ctx, *user); err != nil {
			s.LogError(ctx, err, "Failed to link oauth identity", slog.String("user_id", user.UserID))
			return nil, fmt.Errorf("failed to link oauth identity: %w", err)
		}
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	created := domain.User{
		UserID:         uuid.NewString(),
		Name:           name,
		Email:          email,
		Role:           domain.RoleTeacher,
		AuthProvider:   provider,
		ProviderUserID: providerUserID,
		EmailVerified:  emailVerified,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "system",
			LastUpdatedAt: now,
			LastUpdatedBy: "system",
		},
	}
	if err := s.users.SaveUser(ctx, created); err != nil {
		s.LogError(ctx, err, "Failed to save oauth user", slog.String("email", email))
		return nil, fmt.Errorf("failed to save oauth user: %w", err)
	}

	s.LogInfo(ctx, "OAuth user created",
		slog.String("user_id", created.UserID),
		slog.String("provider", string(provider)))
	return &created, nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("invalid credentials")
		}
		return nil, err
	}
	if user.PasswordHash == "" || !utils.VerifyPassword(password, user.PasswordHash) {
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindUserByID(ctx, userID)
}

func (s *userService) ListUsers(ctx context.Context, actor domain.Actor, limit, offset int) ([]domain.User, error) {
	if err := s.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.users.ListUsers(ctx, limit, offset)
}

func (s *userService) ListTeachers(ctx context.Context) ([]domain.User, error) {
	return s.users.ListTeachers(ctx)
}

func (s *userService) UpdateUser(ctx context.Context, actor domain.Actor, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	if !actor.IsAdmin() && actor.ID != userID {
		return nil, apperrors.ErrForbidden
	}

	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.HourlyRate != nil {
		// Only admins adjust pay rates.
		if !actor.IsAdmin() {
			return nil, apperrors.ErrForbidden
		}
		user.HourlyRate = req.HourlyRate
	}
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = actor.ID

	if err := s.users.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.LogInfo(ctx, "User updated", slog.String("user_id", userID))
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, actor domain.Actor, userID string) error {
	if err := s.RequireAdmin(actor); err != nil {
		return err
	}
	if actor.ID == userID {
		return fmt.Errorf("%w: cannot delete your own account", apperrors.ErrValidation)
	}

	if _, err := s.users.FindUserByID(ctx, userID); err != nil {
		return err
	}

	if err := s.users.MarkUserDeleted(ctx, userID, actor.ID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to delete user", slog.String("user_id", userID))
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID))
	return nil
}
