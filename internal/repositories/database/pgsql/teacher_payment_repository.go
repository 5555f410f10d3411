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

type PgxTeacherPaymentRepository struct {
	db *pgxpool.Pool
}

func newPgxTeacherPaymentRepository(db *pgxpool.Pool) portsrepo.TeacherPaymentRepository {
	return &PgxTeacherPaymentRepository{db: db}
}

var _ portsrepo.TeacherPaymentRepository = (*PgxTeacherPaymentRepository)(nil)

const teacherPaymentColumns = `payment_id, teacher_id, amount, currency_code, status, payment_date, hours_worked, hourly_rate, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanTeacherPayment(row pgx.Row) (domain.TeacherPayment, error) {
	var p domain.TeacherPayment
	err := row.Scan(
		&p.PaymentID,
		&p.TeacherID,
		&p.Amount,
		&p.CurrencyCode,
		&p.Status,
		&p.PaymentDate,
		&p.HoursWorked,
		&p.HourlyRate,
		&p.Notes,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	return p, err
}

func (r *PgxTeacherPaymentRepository) SavePayment(ctx context.Context, payment domain.TeacherPayment) error {
	query := `
		INSERT INTO teacher_payments (payment_id, teacher_id, amount, currency_code, status, payment_date, hours_worked, hourly_rate, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.db.Exec(ctx, query,
		payment.PaymentID,
		payment.TeacherID,
		payment.Amount,
		payment.CurrencyCode,
		payment.Status,
		payment.PaymentDate,
		payment.HoursWorked,
		payment.HourlyRate,
		payment.Notes,
		payment.CreatedAt,
		payment.CreatedBy,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save teacher payment: %w", err)
	}
	return nil
}

func (r *PgxTeacherPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.TeacherPayment, error) {
	query := `SELECT ` + teacherPaymentColumns + ` FROM teacher_payments WHERE payment_id = $1;`
	payment, err := scanTeacherPayment(r.db.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find teacher payment by ID %s: %w", paymentID, err)
	}
	return &payment, nil
}

func (r *PgxTeacherPaymentRepository) ListPaymentsInPeriod(ctx context.Context, period domain.Period, teacherID *string) ([]domain.TeacherPayment, error) {
	query := `
		SELECT ` + teacherPaymentColumns + `
		FROM teacher_payments
		WHERE payment_date >= $1 AND payment_date <= $2`
	args := []any{period.Start, period.End}
	if teacherID != nil {
		args = append(args, *teacherID)
		query += fmt.Sprintf(" AND teacher_id = $%d", len(args))
	}
	query += " ORDER BY payment_date ASC;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query teacher payments: %w", err)
	}
	defer rows.Close()

	payments := make([]domain.TeacherPayment, 0)
	for rows.Next() {
		p, err := scanTeacherPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan teacher payment row: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teacher payment rows: %w", err)
	}
	return payments, nil
}

func (r *PgxTeacherPaymentRepository) UpdatePayment(ctx context.Context, payment domain.TeacherPayment) error {
	query := `
		UPDATE teacher_payments
		SET amount = $2, currency_code = $3, status = $4, payment_date = $5, hours_worked = $6, hourly_rate = $7, notes = $8, last_updated_at = $9, last_updated_by = $10
		WHERE payment_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		payment.PaymentID,
		payment.Amount,
		payment.CurrencyCode,
		payment.Status,
		payment.PaymentDate,
		payment.HoursWorked,
		payment.HourlyRate,
		payment.Notes,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update teacher payment %s: %w", payment.PaymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTeacherPaymentRepository) DeletePayment(ctx context.Context, paymentID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM teacher_payments WHERE payment_id = $1;`, paymentID)
	if err != nil {
		return fmt.Errorf("failed to delete teacher payment %s: %w", paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
