package repositories

import (
	"context"

	"github.com/hammamsawalma/edusystem/internal/core/domain"
)

// StudentPaymentRepository defines persistence operations for student
// payments. Period listings are inclusive on both bounds.
type StudentPaymentRepository interface {
	SavePayment(ctx context.Context, payment domain.StudentPayment) error
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.StudentPayment, error)
	ListPaymentsInPeriod(ctx context.Context, period domain.Period, teacherID *string) ([]domain.StudentPayment, error)
	// ListPaymentsByStudent returns every payment for a student regardless
	// of date; the payment-summary resync reads the full history.
	ListPaymentsByStudent(ctx context.Context, studentID string) ([]domain.StudentPayment, error)
	UpdatePayment(ctx context.Context, payment domain.StudentPayment) error
	DeletePayment(ctx context.Context, paymentID string) error
}

// TeacherPaymentRepository defines persistence operations for teacher
// payouts.
type TeacherPaymentRepository interface {
	SavePayment(ctx context.Context, payment domain.TeacherPayment) error
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.TeacherPayment, error)
	ListPaymentsInPeriod(ctx context.Context, period domain.Period, teacherID *string) ([]domain.TeacherPayment, error)
	UpdatePayment(ctx context.Context, payment domain.TeacherPayment) error
	DeletePayment(ctx context.Context, paymentID string) error
}

// ExpenseFilter narrows expense listings beyond the period.
type ExpenseFilter struct {
	Category *string
	Status   *domain.ExpenseStatus
}

// ExpenseRepository defines persistence operations for general expenses.
type ExpenseRepository interface {
	SaveExpense(ctx context.Context, expense domain.Expense) error
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	ListExpensesInPeriod(ctx context.Context, period domain.Period, filter ExpenseFilter) ([]domain.Expense, error)
	UpdateExpense(ctx context.Context, expense domain.Expense) error
	DeleteExpense(ctx context.Context, expenseID string) error
}

// TimeEntryRepository defines persistence operations for teacher time
// entries.
type TimeEntryRepository interface {
	SaveEntry(ctx context.Context, entry domain.TimeEntry) error
	FindEntryByID(ctx context.Context, entryID string) (*domain.TimeEntry, error)
	ListEntriesInPeriod(ctx context.Context, period domain.Period, teacherID *string) ([]domain.TimeEntry, error)
	UpdateEntry(ctx context.Context, entry domain.TimeEntry) error
	DeleteEntry(ctx context.Context, entryID string) error
}
