package repositories

import (
	"context"
	"time"

	"github.com/hammamsawalma/edusystem/internal/core/domain"
)

// UserRepository defines persistence operations for users (admins and
// teachers alike).
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
	// ListTeachers returns every non-deleted user with the teacher role, in
	// creation order. Reconciliation reports iterate this list so teachers
	// with no activity still appear.
	ListTeachers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error
	MarkUserDeleted(ctx context.Context, userID string, deletedBy string, deletedAt time.Time) error
}
