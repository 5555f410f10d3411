package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hammamsawalma/edusystem/internal/apperrors"
	"github.com/hammamsawalma/edusystem/internal/core/domain"
	portsrepo "github.com/hammamsawalma/edusystem/internal/core/ports/repositories"
	portssvc "github.com/hammamsawalma/edusystem/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// dashboardService produces the fixed quick-stat windows. It reuses the
// same sum primitives as the cash-flow report, pinned to today, this week
// and this month.
type dashboardService struct {
	BaseService
	students        portsrepo.StudentRepository
	studentPayments portsrepo.StudentPaymentRepository
	teacherPayments portsrepo.TeacherPaymentRepository
	expenses        portsrepo.ExpenseRepository
	timeEntries     portsrepo.TimeEntryRepository
	now             func() time.Time
}

// DashboardServiceOption is a functional option for configuring the
// dashboard service.
type DashboardServiceOption func(*dashboardService)

// WithDashboardClock overrides the service clock.
func WithDashboardClock(now func() time.Time) DashboardServiceOption {
	return func(s *dashboardService) {
		s.now = now
	}
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(repos portsrepo.RepositoryProvider, options ...DashboardServiceOption) portssvc.DashboardSvcFacade {
	svc := &dashboardService{
		students:        repos.StudentRepo,
		studentPayments: repos.StudentPaymentRepo,
		teacherPayments: repos.TeacherPaymentRepo,
		expenses:        repos.ExpenseRepo,
		timeEntries:     repos.TimeEntryRepo,
		now:             time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.DashboardSvcFacade = (*dashboardService)(nil)

// Stats returns the admin rollups for today, this week and this month.
func (s *dashboardService) Stats(ctx context.Context, actor domain.Actor) (*domain.DashboardStats, error) {
	if err := s.RequireAdmin(actor); err != nil {
		s.LogWarn(ctx, "Non-admin requested dashboard stats", slog.String("actor_id", actor.ID))
		return nil, err
	}

	now := s.now()
	today := domain.Period{Start: domain.StartOfDay(now), End: now}
	week := domain.Period{Start: domain.StartOfWeek(now), End: now}
	month := domain.Period{Start: domain.StartOfMonth(now), End: now}

	stats := &domain.DashboardStats{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ps, err := s.periodStats(gctx, today)
		if err == nil {
			stats.Today = *ps
		}
		return err
	})
	g.Go(func() error {
		ps, err := s.periodStats(gctx, week)
		if err == nil {
			stats.ThisWeek = *ps
		}
		return err
	})
	g.Go(func() error {
		ps, err := s.periodStats(gctx, month)
		if err == nil {
			stats.ThisMonth = *ps
		}
		return err
	})
	g.Go(func() error {
		count, err := s.students.CountActiveStudents(gctx, nil)
		if err == nil {
			stats.ActiveStudents = count
		}
		return err
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to compute dashboard stats")
		return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
	}

	return stats, nil
}

// TeacherStats returns the teacher rollups. Teachers always see their own
// figures; admins must name a teacher.
func (s *dashboardService) TeacherStats(ctx context.Context, actor domain.Actor, teacherID *string) (*domain.TeacherDashboardStats, error) {
	var target string
	switch {
	case actor.Role == domain.RoleTeacher:
		target = actor.ID
	case teacherID != nil:
		target = *teacherID
	default:
		return nil, fmt.Errorf("%w: teacherId", apperrors.ErrMissingParameter)
	}

	now := s.now()
	today := domain.Period{Start: domain.StartOfDay(now), End: now}
	week := domain.Period{Start: domain.StartOfWeek(now), End: now}
	month := domain.Period{Start: domain.StartOfMonth(now), End: now}
	year := domain.Period{Start: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), End: now}

	stats := &domain.TeacherDashboardStats{TeacherID: target}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ps, err := s.teacherPeriodStats(gctx, target, today)
		if err == nil {
			stats.Today = *ps
		}
		return err
	})
	g.Go(func() error {
		ps, err := s.teacherPeriodStats(gctx, target, week)
		if err == nil {
			stats.ThisWeek = *ps
		}
		return err
	})
	g.Go(func() error {
		ps, err := s.teacherPeriodStats(gctx, target, month)
		if err == nil {
			stats.ThisMonth = *ps
		}
		return err
	})
	g.Go(func() error {
		unpaid, err := s.unpaidEarnings(gctx, target, year)
		if err == nil {
			stats.UnpaidEarnings = unpaid
		}
		return err
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to compute teacher dashboard stats", slog.String("teacher_id", target))
		return nil, fmt.Errorf("failed to compute teacher dashboard stats: %w", err)
	}

	return stats, nil
}

func (s *dashboardService) periodStats(ctx context.Context, period domain.Period) (*domain.PeriodStats, error) {
	approved := domain.ExpenseApproved

	var (
		inflows  []domain.StudentPayment
		outflows []domain.TeacherPayment
		expenses []domain.Expense
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		inflows, err = s.studentPayments.ListPaymentsInPeriod(gctx, period, nil)
		return err
	})
	g.Go(func() error {
		var err error
		outflows, err = s.teacherPayments.ListPaymentsInPeriod(gctx, period, nil)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.expenses.ListExpensesInPeriod(gctx, period, portsrepo.ExpenseFilter{Status: &approved})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ps := &domain.PeriodStats{
		Period:   period,
		Revenue:  decimal.Zero,
		Expenses: decimal.Zero,
	}
	for _, p := range inflows {
		if p.Status == domain.StudentPaymentCompleted {
			ps.Revenue = ps.Revenue.Add(p.Amount)
			ps.Payments++
		}
	}
	for _, p := range outflows {
		if p.Status == domain.TeacherPaymentPaid {
			ps.Expenses = ps.Expenses.Add(p.Amount)
		}
	}
	for _, e := range expenses {
		ps.Expenses = ps.Expenses.Add(e.Amount)
	}
	ps.Net = ps.Revenue.Sub(ps.Expenses)
	return ps, nil
}

func (s *dashboardService) teacherPeriodStats(ctx context.Context, teacherID string, period domain.Period) (*domain.TeacherPeriodStats, error) {
	entries, err := s.timeEntries.ListEntriesInPeriod(ctx, period, &teacherID)
	if err != nil {
		return nil, err
	}

	ps := &domain.TeacherPeriodStats{
		Period:   period,
		Hours:    decimal.Zero,
		Earnings: decimal.Zero,
	}
	for _, e := range entries {
		ps.Hours = ps.Hours.Add(e.HoursWorked)
		ps.Earnings = ps.Earnings.Add(e.HoursWorked.Mul(e.HourlyRate))
	}
	return ps, nil
}

// unpaidEarnings is the same clamped earned-minus-(paid+pending)
// reconciliation as the teacher report, for one teacher.
func (s *dashboardService) unpaidEarnings(ctx context.Context, teacherID string, period domain.Period) (decimal.Decimal, error) {
	var (
		entries  []domain.TimeEntry
		payments []domain.TeacherPayment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = s.timeEntries.ListEntriesInPeriod(gctx, period, &teacherID)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = s.teacherPayments.ListPaymentsInPeriod(gctx, period, &teacherID)
		return err
	})
	if err := g.Wait(); err != nil {
		return decimal.Zero, err
	}

	earnings := decimal.Zero
	for _, e := range entries {
		earnings = earnings.Add(e.HoursWorked.Mul(e.HourlyRate))
	}
	settled := decimal.Zero
	for _, p := range payments {
		switch p.Status {
		case domain.TeacherPaymentPaid, domain.TeacherPaymentPending, domain.TeacherPaymentApproved:
			settled = settled.Add(p.Amount)
		}
	}
	return maxZero(earnings.Sub(settled)), nil
}
