package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hammamsawalma/edusystem/internal/apperrors"
	"github.com/hammamsawalma/edusystem/internal/core/domain"
	portsrepo "github.com/hammamsawalma/edusystem/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxStudentRepository struct {
	db *pgxpool.Pool
}

func newPgxStudentRepository(db *pgxpool.Pool) portsrepo.StudentRepository {
	return &PgxStudentRepository{db: db}
}

var _ portsrepo.StudentRepository = (*PgxStudentRepository)(nil)

const studentColumns = `student_id, name, teacher_id, active, total_paid, last_payment_date, current_balance, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanStudent(row pgx.Row) (domain.Student, error) {
	var s domain.Student
	err := row.Scan(
		&s.StudentID,
		&s.Name,
		&s.TeacherID,
		&s.Active,
		&s.TotalPaid,
		&s.LastPaymentDate,
		&s.CurrentBalance,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
		&s.DeletedAt,
	)
	return s, err
}

func (r *PgxStudentRepository) SaveStudent(ctx context.Context, student domain.Student) error {
	query := `
		INSERT INTO students (student_id, name, teacher_id, active, total_paid, last_payment_date, current_balance, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.db.Exec(ctx, query,
		student.StudentID,
		student.Name,
		student.TeacherID,
		student.Active,
		student.TotalPaid,
		student.LastPaymentDate,
		student.CurrentBalance,
		student.CreatedAt,
		student.CreatedBy,
		student.LastUpdatedAt,
		student.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save student: %w", err)
	}
	return nil
}

func (r *PgxStudentRepository) FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE student_id = $1 AND deleted_at IS NULL;`
	student, err := scanStudent(r.db.QueryRow(ctx, query, studentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find student by ID %s: %w", studentID, err)
	}
	return &student, nil
}

func (r *PgxStudentRepository) ListStudents(ctx context.Context, filter portsrepo.StudentFilter) ([]domain.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE deleted_at IS NULL`
	args := []any{}
	if filter.TeacherID != nil {
		args = append(args, *filter.TeacherID)
		query += fmt.Sprintf(" AND teacher_id = $%d", len(args))
	}
	if filter.ActiveOnly {
		query += " AND active = TRUE"
	}
	query += " ORDER BY created_at ASC;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	students := make([]domain.Student, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student row: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}
	return students, nil
}

func (r *PgxStudentRepository) UpdateStudent(ctx context.Context, student domain.Student) error {
	query := `
		UPDATE students
		SET name = $2, teacher_id = $3, active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE student_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query,
		student.StudentID,
		student.Name,
		student.TeacherID,
		student.Active,
		student.LastUpdatedAt,
		student.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update student %s: %w", student.StudentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxStudentRepository) MarkStudentDeleted(ctx context.Context, studentID string, deletedBy string, deletedAt time.Time) error {
	query := `
		UPDATE students
		SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE student_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query, studentID, deletedAt, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to mark student %s deleted: %w", studentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxStudentRepository) CountActiveStudents(ctx context.Context, teacherID *string) (int, error) {
	query := `SELECT COUNT(*) FROM students WHERE active = TRUE AND deleted_at IS NULL`
	args := []any{}
	if teacherID != nil {
		args = append(args, *teacherID)
		query += " AND teacher_id = $1"
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active students: %w", err)
	}
	return count, nil
}

func (r *PgxStudentRepository) UpdatePaymentSummary(ctx context.Context, studentID string, totalPaid decimal.Decimal, lastPaymentDate *time.Time, currentBalance decimal.Decimal) error {
	query := `
		UPDATE students
		SET total_paid = $2, last_payment_date = $3, current_balance = $4
		WHERE student_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query, studentID, totalPaid, lastPaymentDate, currentBalance)
	if err != nil {
		return fmt.Errorf("failed to update payment summary for student %s: %w", studentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
