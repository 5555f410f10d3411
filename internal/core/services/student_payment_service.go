package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hammamsawalma/edusystem/internal/apperrors"
	"github.com/hammamsawalma/edusystem/internal/core/domain"
	portsrepo "github.com/hammamsawalma/edusystem/internal/core/ports/repositories"
	portssvc "github.com/hammamsawalma/edusystem/internal/core/ports/services"
	"github.com/hammamsawalma/edusystem/internal/dto"
	"github.com/shopspring/decimal"
)

// studentPaymentService manages tuition payments. The payment write is the
// transactional boundary; the denormalized student summary refresh that
// follows every mutation is best-effort and never fails the parent
// request.
type studentPaymentService struct {
	BaseService
	payments portsrepo.StudentPaymentRepository
	students portsrepo.StudentRepository
}

// NewStudentPaymentService creates a new student payment service.
func NewStudentPaymentService(payments portsrepo.StudentPaymentRepository, students portsrepo.StudentRepository) portssvc.StudentPaymentSvcFacade {
	return &studentPaymentService{payments: payments, students: students}
}

var _ portssvc.StudentPaymentSvcFacade = (*studentPaymentService)(nil)

func (s *studentPaymentService) CreatePayment(ctx context.Context, actor domain.Actor, req dto.CreateStudentPaymentRequest) (*domain.StudentPayment, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	student, err := s.students.FindStudentByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleTeacher && student.TeacherID != actor.ID {
		return nil, apperrors.ErrForbidden
	}

	now := time.Now()
	payment := domain.StudentPayment{
		PaymentID:    uuid.NewString(),
		StudentID:    student.StudentID,
		TeacherID:    student.TeacherID,
		Amount:       req.Amount,
		CurrencyCode: req.CurrencyCode,
		Status:       domain.StudentPaymentStatus(req.Status),
		PaymentDate:  req.PaymentDate,
		DueDate:      req.DueDate,
		Notes:        req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.ID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.ID,
		},
	}

	if err := s.payments.SavePayment(ctx, payment); err != nil {
		s.LogError(ctx, err, "Failed to save student payment", slog.String("student_id", student.StudentID))
		return nil, fmt.Errorf("failed to save student payment: %w", err)
	}

	s.resyncAfterMutation(ctx, student.StudentID)

	s.LogInfo(ctx, "Student payment created",
		slog.String("payment_id", payment.PaymentID),
		slog.String("student_id", student.StudentID))
	return &payment, nil
}

func (s *studentPaymentService) GetPaymentByID(ctx context.Context, actor domain.Actor, paymentID string) (*domain.StudentPayment, error) {
	payment, err := s.payments.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleTeacher && payment.TeacherID != actor.ID {
		return nil, apperrors.ErrForbidden
	}
	return payment, nil
}

func (s *studentPaymentService) ListPayments(ctx context.Context, actor domain.Actor, period domain.Period) ([]domain.StudentPayment, error) {
	return s.payments.ListPaymentsInPeriod(ctx, period, actor.ScopeTeacher(nil))
}

func (s *studentPaymentService) UpdatePayment(ctx context.Context, actor domain.Actor, paymentID string, req dto.UpdateStudentPaymentRequest) (*domain.StudentPayment, error) {
	payment, err := s.payments.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleTeacher && payment.TeacherID != actor.ID {
		return nil, apperrors.ErrForbidden
	}

	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
		payment.Amount = *req.Amount
	}
	if req.Status != nil {
		payment.Status = domain.StudentPaymentStatus(*req.Status)
	}
	if req.PaymentDate != nil {
		payment.PaymentDate = *req.PaymentDate
	}
	if req.DueDate != nil {
		payment.DueDate = req.DueDate
	}
	if req.Notes != nil {
		payment.Notes = *req.Notes
	}
	payment.LastUpdatedAt = time.Now()
	payment.LastUpdatedBy = actor.ID

	if err := s.payments.UpdatePayment(ctx, *payment); err != nil {
		s.LogError(ctx, err, "Failed to update student payment", slog.String("payment_id", paymentID))
		return nil, fmt.Errorf("failed to update student payment: %w", err)
	}

	s.resyncAfterMutation(ctx, payment.StudentID)

	s.LogInfo(ctx, "Student payment updated", slog.String("payment_id", paymentID))
	return payment, nil
}

func (s *studentPaymentService) DeletePayment(ctx context.Context, actor domain.Actor, paymentID string) error {
	payment, err := s.payments.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return err
	}
	if actor.Role == domain.RoleTeacher && payment.TeacherID != actor.ID {
		return apperrors.ErrForbidden
	}

	if err := s.payments.DeletePayment(ctx, paymentID); err != nil {
		s.LogError(ctx, err, "Failed to delete student payment", slog.String("payment_id", paymentID))
		return fmt.Errorf("failed to delete student payment: %w", err)
	}

	s.resyncAfterMutation(ctx, payment.StudentID)

	s.LogInfo(ctx, "Student payment deleted", slog.String("payment_id", paymentID))
	return nil
}

// ResyncStudentSummary recomputes the student's all-time totalPaid (sum of
// completed payments) and lastPaymentDate (latest completed paymentDate)
// and persists them together with the derived current balance (pending
// minus nothing, clamped at zero). Running it again with no intervening
// mutation produces identical values.
func (s *studentPaymentService) ResyncStudentSummary(ctx context.Context, studentID string) error {
	payments, err := s.payments.ListPaymentsByStudent(ctx, studentID)
	if err != nil {
		return fmt.Errorf("failed to list payments for summary resync: %w", err)
	}

	totalPaid := decimal.Zero
	pending := decimal.Zero
	var lastPaymentDate *time.Time
	for _, p := range payments {
		switch p.Status {
		case domain.StudentPaymentCompleted:
			totalPaid = totalPaid.Add(p.Amount)
			if lastPaymentDate == nil || p.PaymentDate.After(*lastPaymentDate) {
				d := p.PaymentDate
				lastPaymentDate = &d
			}
		case domain.StudentPaymentPending:
			pending = pending.Add(p.Amount)
		}
	}

	balance := maxZero(pending)
	if err := s.students.UpdatePaymentSummary(ctx, studentID, totalPaid, lastPaymentDate, balance); err != nil {
		return fmt.Errorf("failed to persist payment summary: %w", err)
	}
	return nil
}

// resyncAfterMutation runs the summary refresh after a payment write. A
// failure here is logged and swallowed: the payment mutation already
// committed and must not be reported as failed.
func (s *studentPaymentService) resyncAfterMutation(ctx context.Context, studentID string) {
	if err := s.ResyncStudentSummary(context.WithoutCancel(ctx), studentID); err != nil {
		s.LogError(ctx, err, "Student payment summary resync failed",
			slog.String("student_id", studentID))
	}
}
