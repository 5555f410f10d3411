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

// studentService manages student records. Teachers only see their own
// students; reassignment and deletion are admin operations.
type studentService struct {
	BaseService
	students portsrepo.StudentRepository
	users    portsrepo.UserRepository
}

// NewStudentService creates a new student service.
func NewStudentService(students portsrepo.StudentRepository, users portsrepo.UserRepository) portssvc.StudentSvcFacade {
	return &studentService{students: students, users: users}
}

var _ portssvc.StudentSvcFacade = (*studentService)(nil)

func (s *studentService) CreateStudent(ctx context.Context, actor domain.Actor, req dto.CreateStudentRequest) (*domain.Student, error) {
	teacherID := req.TeacherID
	if !actor.IsAdmin() && teacherID != actor.ID {
		return nil, apperrors.ErrForbidden
	}

	teacher, err := s.users.FindUserByID(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if teacher.Role != domain.RoleTeacher {
		return nil, fmt.Errorf("%w: user %s is not a teacher", apperrors.ErrValidation, teacherID)
	}

	now := time.Now()
	student := domain.Student{
		StudentID:      uuid.NewString(),
		Name:           req.Name,
		TeacherID:      teacherID,
		Active:         true,
		TotalPaid:      decimal.Zero,
		CurrentBalance: decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.ID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.ID,
		},
	}

	if err := s.students.SaveStudent(ctx, student); err != nil {
		s.LogError(ctx, err, "Failed to save student", slog.String("teacher_id", teacherID))
		return nil, fmt.Errorf("failed to save student: %w", err)
	}

	s.LogInfo(ctx, "Student created",
		slog.String("student_id", student.StudentID),
		slog.String("teacher_id", teacherID))
	return &student, nil
}

func (s *studentService) GetStudentByID(ctx context.Context, actor domain.Actor, studentID string) (*domain.Student, error) {
	student, err := s.students.FindStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && student.TeacherID != actor.ID {
		return nil, apperrors.ErrForbidden
	}
	return student, nil
}

func (s *studentService) ListStudents(ctx context.Context, actor domain.Actor, activeOnly bool) ([]domain.Student, error) {
	return s.students.ListStudents(ctx, portsrepo.StudentFilter{
		TeacherID:  actor.ScopeTeacher(nil),
		ActiveOnly: activeOnly,
	})
}

func (s *studentService) UpdateStudent(ctx context.Context, actor domain.Actor, studentID string, req dto.UpdateStudentRequest) (*domain.Student, error) {
	student, err := s.students.FindStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && student.TeacherID != actor.ID {
		return nil, apperrors.ErrForbidden
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.TeacherID != nil && *req.TeacherID != student.TeacherID {
		// Reassigning a student to another teacher is an admin operation.
		if !actor.IsAdmin() {
			return nil, apperrors.ErrForbidden
		}
		teacher, err := s.users.FindUserByID(ctx, *req.TeacherID)
		if err != nil {
			return nil, err
		}
		if teacher.Role != domain.RoleTeacher {
			return nil, fmt.Errorf("%w: user %s is not a teacher", apperrors.ErrValidation, *req.TeacherID)
		}
		student.TeacherID = *req.TeacherID
	}
	if req.Active != nil {
		student.Active = *req.Active
	}
	student.LastUpdatedAt = time.Now()
	student.LastUpdatedBy = actor.ID

	if err := s.students.UpdateStudent(ctx, *student); err != nil {
		s.LogError(ctx, err, "Failed to update student", slog.String("student_id", studentID))
		return nil, fmt.Errorf("failed to update student: %w", err)
	}

	s.LogInfo(ctx, "Student updated", slog.String("student_id", studentID))
	return student, nil
}

func (s *studentService) DeleteStudent(ctx context.Context, actor domain.Actor, studentID string) error {
	if err := s.RequireAdmin(actor); err != nil {
		return err
	}

	if _, err := s.students.FindStudentByID(ctx, studentID); err != nil {
		return err
	}

	if err := s.students.MarkStudentDeleted(ctx, studentID, actor.ID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to delete student", slog.String("student_id", studentID))
		return fmt.Errorf("failed to delete student: %w", err)
	}

	s.LogInfo(ctx, "Student deleted", slog.String("student_id", studentID))
	return nil
}
