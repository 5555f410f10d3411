package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hammamsawalma/edusystem/internal/apperrors"
	"github.com/hammamsawalma/edusystem/internal/core/domain"
	portsrepo "github.com/hammamsawalma/edusystem/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxStudentPaymentRepository struct {
	db *pgxpool.Pool
}

func newPgxStudentPaymentRepository(db *pgxpool.Pool) portsrepo.StudentPaymentRepository {
	return &PgxStudentPaymentRepository{db: db}
}

var _ portsrepo.StudentPaymentRepository = (*PgxStudentPaymentRepository)(nil)

const studentPaymentColumns = `payment_id, student_id, teacher_id, amount, currency_code, status, payment_date, due_date, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanStudentPayment(row pgx.Row) (domain.StudentPayment, error) {
	var p domain.StudentPayment
	err := row.Scan(
		&p.PaymentID,
		&p.StudentID,
		&p.TeacherID,
		&p.Amount,
		&p.CurrencyCode,
		&p.Status,
		&p.PaymentDate,
		&p.DueDate,
		&p.Notes,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	return p, err
}

func collectStudentPayments(rows pgx.Rows) ([]domain.StudentPayment, error) {
	payments := make([]domain.StudentPayment, 0)
	for rows.Next() {
		p, err := scanStudentPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student payment row: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student payment rows: %w", err)
	}
	return payments, nil
}

func (r *PgxStudentPaymentRepository) SavePayment(ctx context.Context, payment domain.StudentPayment) error {
	query := `
		INSERT INTO student_payments (payment_id, student_id, teacher_id, amount, currency_code, status, payment_date, due_date, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.db.Exec(ctx, query,
		payment.PaymentID,
		payment.StudentID,
		payment.TeacherID,
		payment.Amount,
		payment.CurrencyCode,
		payment.Status,
		payment.PaymentDate,
		payment.DueDate,
		payment.Notes,
		payment.CreatedAt,
		payment.CreatedBy,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save student payment: %w", err)
	}
	return nil
}

func (r *PgxStudentPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.StudentPayment, error) {
	query := `SELECT ` + studentPaymentColumns + ` FROM student_payments WHERE payment_id = $1;`
	payment, err := scanStudentPayment(r.db.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find student payment by ID %s: %w", paymentID, err)
	}
	return &payment, nil
}

func (r *PgxStudentPaymentRepository) ListPaymentsInPeriod(ctx context.Context, period domain.Period, teacherID *string) ([]domain.StudentPayment, error) {
	query := `
		SELECT ` + studentPaymentColumns + `
		FROM student_payments
		WHERE payment_date >= $1 AND payment_date <= $2`
	args := []any{period.Start, period.End}
	if teacherID != nil {
		args = append(args, *teacherID)
		query += fmt.Sprintf(" AND teacher_id = $%d", len(args))
	}
	query += " ORDER BY payment_date ASC;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query student payments: %w", err)
	}
	defer rows.Close()

	return collectStudentPayments(rows)
}

func (r *PgxStudentPaymentRepository) ListPaymentsByStudent(ctx context.Context, studentID string) ([]domain.StudentPayment, error) {
	query := `
		SELECT ` + studentPaymentColumns + `
		FROM student_payments
		WHERE student_id = $1
		ORDER BY payment_date ASC;
	`
	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for student %s: %w", studentID, err)
	}
	defer rows.Close()

	return collectStudentPayments(rows)
}

func (r *PgxStudentPaymentRepository) UpdatePayment(ctx context.Context, payment domain.StudentPayment) error {
	query := `
		UPDATE student_payments
		SET amount = $2, currency_code = $3, status = $4, payment_date = $5, due_date = $6, notes = $7, last_updated_at = $8, last_updated_by = $9
		WHERE payment_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		payment.PaymentID,
		payment.Amount,
		payment.CurrencyCode,
		payment.Status,
		payment.PaymentDate,
		payment.DueDate,
		payment.Notes,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update student payment %s: %w", payment.PaymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxStudentPaymentRepository) DeletePayment(ctx context.Context, paymentID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM student_payments WHERE payment_id = $1;`, paymentID)
	if err != nil {
		return fmt.Errorf("failed to delete student payment %s: %w", paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
