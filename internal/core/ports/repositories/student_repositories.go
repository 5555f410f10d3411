package repositories

import (
	"context"
	"time"

	"github.com/hammamsawalma/edusystem/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StudentFilter narrows student listings.
type StudentFilter struct {
	TeacherID  *string
	ActiveOnly bool
}

// StudentRepository defines persistence operations for students.
type StudentRepository interface {
	SaveStudent(ctx context.Context, student domain.Student) error
	FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error)
	// ListStudents returns matching students in creation order; revenue
	// reports preserve this ordering.
	ListStudents(ctx context.Context, filter StudentFilter) ([]domain.Student, error)
	UpdateStudent(ctx context.Context, student domain.Student) error
	MarkStudentDeleted(ctx context.Context, studentID string, deletedBy string, deletedAt time.Time) error
	CountActiveStudents(ctx context.Context, teacherID *string) (int, error)
	// UpdatePaymentSummary persists the denormalized payment-summary fields
	// recomputed after a payment mutation.
	UpdatePaymentSummary(ctx context.Context, studentID string, totalPaid decimal.Decimal, lastPaymentDate *time.Time, currentBalance decimal.Decimal) error
}
