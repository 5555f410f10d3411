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

// timeEntryService manages teacher time entries. The entry total is
// always HoursWorked x HourlyRate, re-derived on every mutation.
type timeEntryService struct {
	BaseService
	entries portsrepo.TimeEntryRepository
	users   portsrepo.UserRepository
}

// NewTimeEntryService creates a new time entry service.
func NewTimeEntryService(entries portsrepo.TimeEntryRepository, users portsrepo.UserRepository) portssvc.TimeEntrySvcFacade {
	return &timeEntryService{entries: entries, users: users}
}

var _ portssvc.TimeEntrySvcFacade = (*timeEntryService)(nil)

func (s *timeEntryService) CreateEntry(ctx context.Context, actor domain.Actor, req dto.CreateTimeEntryRequest) (*domain.TimeEntry, error) {
	teacherID := req.TeacherID
	if !actor.IsAdmin() {
		// Teachers can only log their own hours.
		if teacherID != "" && teacherID != actor.ID {
			return nil, apperrors.ErrForbidden
		}
		teacherID = actor.ID
	}
	if teacherID == "" {
		return nil, fmt.Errorf("%w: teacherID", apperrors.ErrMissingParameter)
	}

	if !req.HoursWorked.IsPositive() {
		return nil, fmt.Errorf("%w: hoursWorked must be positive", apperrors.ErrValidation)
	}

	teacher, err := s.users.FindUserByID(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if teacher.Role != domain.RoleTeacher {
		return nil, fmt.Errorf("%w: user %s is not a teacher", apperrors.ErrValidation, teacherID)
	}

	rate, err := resolveHourlyRate(req.HourlyRate, teacher)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entry := domain.TimeEntry{
		EntryID:     uuid.NewString(),
		TeacherID:   teacherID,
		Date:        req.Date,
		HoursWorked: req.HoursWorked,
		HourlyRate:  rate,
		TotalAmount: req.HoursWorked.Mul(rate),
		Notes:       req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.ID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.ID,
		},
	}

	if err := s.entries.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save time entry", slog.String("teacher_id", teacherID))
		return nil, fmt.Errorf("failed to save time entry: %w", err)
	}

	s.LogInfo(ctx, "Time entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("teacher_id", teacherID))
	return &entry, nil
}

func (s *timeEntryService) GetEntryByID(ctx context.Context, actor domain.Actor, entryID string) (*domain.TimeEntry, error) {
	entry, err := s.entries.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && entry.TeacherID != actor.ID {
		return nil, apperrors.ErrForbidden
	}
	return entry, nil
}

func (s *timeEntryService) ListEntries(ctx context.Context, actor domain.Actor, period domain.Period) ([]domain.TimeEntry, error) {
	return s.entries.ListEntriesInPeriod(ctx, period, actor.ScopeTeacher(nil))
}

func (s *timeEntryService) UpdateEntry(ctx context.Context, actor domain.Actor, entryID string, req dto.UpdateTimeEntryRequest) (*domain.TimeEntry, error) {
	entry, err := s.entries.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && entry.TeacherID != actor.ID {
		return nil, apperrors.ErrForbidden
	}

	if req.Date != nil {
		entry.Date = *req.Date
	}
	if req.HoursWorked != nil {
		if !req.HoursWorked.IsPositive() {
			return nil, fmt.Errorf("%w: hoursWorked must be positive", apperrors.ErrValidation)
		}
		entry.HoursWorked = *req.HoursWorked
	}
	if req.HourlyRate != nil {
		if req.HourlyRate.IsNegative() {
			return nil, fmt.Errorf("%w: hourlyRate cannot be negative", apperrors.ErrValidation)
		}
		entry.HourlyRate = *req.HourlyRate
	}
	if req.Notes != nil {
		entry.Notes = *req.Notes
	}
	entry.TotalAmount = entry.HoursWorked.Mul(entry.HourlyRate)
	entry.LastUpdatedAt = time.Now()
	entry.LastUpdatedBy = actor.ID

	if err := s.entries.UpdateEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to update time entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update time entry: %w", err)
	}

	s.LogInfo(ctx, "Time entry updated", slog.String("entry_id", entryID))
	return entry, nil
}

func (s *timeEntryService) DeleteEntry(ctx context.Context, actor domain.Actor, entryID string) error {
	entry, err := s.entries.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && entry.TeacherID != actor.ID {
		return apperrors.ErrForbidden
	}

	if err := s.entries.DeleteEntry(ctx, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete time entry", slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete time entry: %w", err)
	}

	s.LogInfo(ctx, "Time entry deleted", slog.String("entry_id", entryID))
	return nil
}

// resolveHourlyRate picks the explicit request rate when present, falling
// back to the teacher's configured rate.
func resolveHourlyRate(requested *decimal.Decimal, teacher *domain.User) (decimal.Decimal, error) {
	if requested != nil {
		if requested.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: hourlyRate cannot be negative", apperrors.ErrValidation)
		}
		return *requested, nil
	}
	if teacher.HourlyRate == nil {
		return decimal.Zero, fmt.Errorf("%w: teacher %s has no hourly rate configured", apperrors.ErrValidation, teacher.UserID)
	}
	return *teacher.HourlyRate, nil
}
