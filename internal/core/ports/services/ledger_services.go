package services

import (
	"context"

	"github.com/hammamsawalma/edusystem/internal/core/domain"
	"github.com/hammamsawalma/edusystem/internal/dto"
)

// StudentSvcFacade manages student records.
type StudentSvcFacade interface {
	CreateStudent(ctx context.Context, actor domain.Actor, req dto.CreateStudentRequest) (*domain.Student, error)
	GetStudentByID(ctx context.Context, actor domain.Actor, studentID string) (*domain.Student, error)
	ListStudents(ctx context.Context, actor domain.Actor, activeOnly bool) ([]domain.Student, error)
	UpdateStudent(ctx context.Context, actor domain.Actor, studentID string, req dto.UpdateStudentRequest) (*domain.Student, error)
	DeleteStudent(ctx context.Context, actor domain.Actor, studentID string) error
}

// StudentPaymentSvcFacade manages tuition payments. Every mutation
// triggers a best-effort resynchronization of the owning student's
// denormalized payment summary before returning.
type StudentPaymentSvcFacade interface {
	CreatePayment(ctx context.Context, actor domain.Actor, req dto.CreateStudentPaymentRequest) (*domain.StudentPayment, error)
	GetPaymentByID(ctx context.Context, actor domain.Actor, paymentID string) (*domain.StudentPayment, error)
	ListPayments(ctx context.Context, actor domain.Actor, period domain.Period) ([]domain.StudentPayment, error)
	UpdatePayment(ctx context.Context, actor domain.Actor, paymentID string, req dto.UpdateStudentPaymentRequest) (*domain.StudentPayment, error)
	DeletePayment(ctx context.Context, actor domain.Actor, paymentID string) error
	// ResyncStudentSummary recomputes the student's all-time totalPaid and
	// lastPaymentDate from completed payments and persists them. Idempotent.
	ResyncStudentSummary(ctx context.Context, studentID string) error
}

// TeacherPaymentSvcFacade manages teacher payouts, enforcing the monotonic
// pending -> approved|rejected -> paid status lifecycle.
type TeacherPaymentSvcFacade interface {
	CreatePayment(ctx context.Context, actor domain.Actor, req dto.CreateTeacherPaymentRequest) (*domain.TeacherPayment, error)
	GetPaymentByID(ctx context.Context, actor domain.Actor, paymentID string) (*domain.TeacherPayment, error)
	ListPayments(ctx context.Context, actor domain.Actor, period domain.Period) ([]domain.TeacherPayment, error)
	UpdateStatus(ctx context.Context, actor domain.Actor, paymentID string, req dto.UpdateTeacherPaymentStatusRequest) (*domain.TeacherPayment, error)
	DeletePayment(ctx context.Context, actor domain.Actor, paymentID string) error
}

// ExpenseSvcFacade manages general expenses.
type ExpenseSvcFacade interface {
	CreateExpense(ctx context.Context, actor domain.Actor, req dto.CreateExpenseRequest) (*domain.Expense, error)
	GetExpenseByID(ctx context.Context, actor domain.Actor, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, actor domain.Actor, period domain.Period, category *string, status *domain.ExpenseStatus) ([]domain.Expense, error)
	UpdateExpense(ctx context.Context, actor domain.Actor, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error)
	ReviewExpense(ctx context.Context, actor domain.Actor, expenseID string, req dto.ReviewExpenseRequest) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, actor domain.Actor, expenseID string) error
}

// TimeEntrySvcFacade manages teacher time entries. The total amount is
// always derived from hours x rate server-side.
type TimeEntrySvcFacade interface {
	CreateEntry(ctx context.Context, actor domain.Actor, req dto.CreateTimeEntryRequest) (*domain.TimeEntry, error)
	GetEntryByID(ctx context.Context, actor domain.Actor, entryID string) (*domain.TimeEntry, error)
	ListEntries(ctx context.Context, actor domain.Actor, period domain.Period) ([]domain.TimeEntry, error)
	UpdateEntry(ctx context.Context, actor domain.Actor, entryID string, req dto.UpdateTimeEntryRequest) (*domain.TimeEntry, error)
	DeleteEntry(ctx context.Context, actor domain.Actor, entryID string) error
}

// ReportSvcFacade persists and retrieves aggregation snapshots.
type ReportSvcFacade interface {
	GenerateReport(ctx context.Context, actor domain.Actor, req dto.GenerateReportRequest) (*domain.FinancialReport, error)
	GetReportByID(ctx context.Context, actor domain.Actor, reportID string) (*domain.FinancialReport, error)
	ListReports(ctx context.Context, actor domain.Actor, reportType *domain.ReportType, limit int, nextToken *string) ([]domain.FinancialReport, *string, error)
	SetArchived(ctx context.Context, actor domain.Actor, reportID string, archived bool) error
}
