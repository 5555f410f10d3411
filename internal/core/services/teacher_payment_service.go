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
)

// teacherPaymentService manages teacher payouts. Status changes only move
// forward: pending -> approved|rejected, approved -> paid.
type teacherPaymentService struct {
	BaseService
	payments portsrepo.TeacherPaymentRepository
	users    portsrepo.UserRepository
}

// NewTeacherPaymentService creates a new teacher payment service.
func NewTeacherPaymentService(payments portsrepo.TeacherPaymentRepository, users portsrepo.UserRepository) portssvc.TeacherPaymentSvcFacade {
	return &teacherPaymentService{payments: payments, users: users}
}

var _ portssvc.TeacherPaymentSvcFacade = (*teacherPaymentService)(nil)

func (s *teacherPaymentService) CreatePayment(ctx context.Context, actor domain.Actor, req dto.CreateTeacherPaymentRequest) (*domain.TeacherPayment, error) {
	if err := s.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	teacher, err := s.users.FindUserByID(ctx, req.TeacherID)
	if err != nil {
		return nil, err
	}
	if teacher.Role != domain.RoleTeacher {
		return nil, fmt.Errorf("%w: user %s is not a teacher", apperrors.ErrValidation, req.TeacherID)
	}

	now := time.Now()
	payment := domain.TeacherPayment{
		PaymentID:    uuid.NewString(),
		TeacherID:    teacher.UserID,
		Amount:       req.Amount,
		CurrencyCode: req.CurrencyCode,
		Status:       domain.TeacherPaymentPending,
		PaymentDate:  req.PaymentDate,
		HoursWorked:  req.HoursWorked,
		HourlyRate:   req.HourlyRate,
		Notes:        req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.ID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.ID,
		},
	}

	if err := s.payments.SavePayment(ctx, payment); err != nil {
		s.LogError(ctx, err, "Failed to save teacher payment", slog.String("teacher_id", teacher.UserID))
		return nil, fmt.Errorf("failed to save teacher payment: %w", err)
	}

	s.LogInfo(ctx, "Teacher payment created",
		slog.String("payment_id", payment.PaymentID),
		slog.String("teacher_id", teacher.UserID))
	return &payment, nil
}

func (s *teacherPaymentService) GetPaymentByID(ctx context.Context, actor domain.Actor, paymentID string) (*domain.TeacherPayment, error) {
	payment, err := s.payments.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleTeacher && payment.TeacherID != actor.ID {
		return nil, apperrors.ErrForbidden
	}
	return payment, nil
}

func (s *teacherPaymentService) ListPayments(ctx context.Context, actor domain.Actor, period domain.Period) ([]domain.TeacherPayment, error) {
	return s.payments.ListPaymentsInPeriod(ctx, period, actor.ScopeTeacher(nil))
}

// UpdateStatus moves a payout along its lifecycle. Rejected and paid are
// terminal; skipping approval or moving backward is a validation error.
func (s *teacherPaymentService) UpdateStatus(ctx context.Context, actor domain.Actor, paymentID string, req dto.UpdateTeacherPaymentStatusRequest) (*domain.TeacherPayment, error) {
	if err := s.RequireAdmin(actor); err != nil {
		return nil, err
	}

	payment, err := s.payments.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	next := domain.TeacherPaymentStatus(req.Status)
	if !payment.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: cannot transition payment from %s to %s",
			apperrors.ErrValidation, payment.Status, next)
	}

	payment.Status = next
	payment.LastUpdatedAt = time.Now()
	payment.LastUpdatedBy = actor.ID

	if err := s.payments.UpdatePayment(ctx, *payment); err != nil {
		s.LogError(ctx, err, "Failed to update teacher payment status", slog.String("payment_id", paymentID))
		return nil, fmt.Errorf("failed to update teacher payment: %w", err)
	}

	s.LogInfo(ctx, "Teacher payment status updated",
		slog.String("payment_id", paymentID),
		slog.String("status", string(next)))
	return payment, nil
}

func (s *teacherPaymentService) DeletePayment(ctx context.Context, actor domain.Actor, paymentID string) error {
	if err := s.RequireAdmin(actor); err != nil {
		return err
	}

	payment, err := s.payments.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return err
	}
	// Paid payouts are part of the financial record and stay.
	if payment.Status == domain.TeacherPaymentPaid {
		return fmt.Errorf("%w: paid payments cannot be deleted", apperrors.ErrValidation)
	}

	if err := s.payments.DeletePayment(ctx, paymentID); err != nil {
		s.LogError(ctx, err, "Failed to delete teacher payment", slog.String("payment_id", paymentID))
		return fmt.Errorf("failed to delete teacher payment: %w", err)
	}

	s.LogInfo(ctx, "Teacher payment deleted", slog.String("payment_id", paymentID))
	return nil
}
