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

type PgxTimeEntryRepository struct {
	db *pgxpool.Pool
}

func newPgxTimeEntryRepository(db *pgxpool.Pool) portsrepo.TimeEntryRepository {
	return &PgxTimeEntryRepository{db: db}
}

var _ portsrepo.TimeEntryRepository = (*PgxTimeEntryRepository)(nil)

const timeEntryColumns = `entry_id, teacher_id, date, hours_worked, hourly_rate, total_amount, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanTimeEntry(row pgx.Row) (domain.TimeEntry, error) {
	var e domain.TimeEntry
	err := row.Scan(
		&e.EntryID,
		&e.TeacherID,
		&e.Date,
		&e.HoursWorked,
		&e.HourlyRate,
		&e.TotalAmount,
		&e.Notes,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	return e, err
}

func (r *PgxTimeEntryRepository) SaveEntry(ctx context.Context, entry domain.TimeEntry) error {
	query := `
		INSERT INTO time_entries (entry_id, teacher_id, date, hours_worked, hourly_rate, total_amount, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.db.Exec(ctx, query,
		entry.EntryID,
		entry.TeacherID,
		entry.Date,
		entry.HoursWorked,
		entry.HourlyRate,
		entry.TotalAmount,
		entry.Notes,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save time entry: %w", err)
	}
	return nil
}

func (r *PgxTimeEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE entry_id = $1;`
	entry, err := scanTimeEntry(r.db.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find time entry by ID %s: %w", entryID, err)
	}
	return &entry, nil
}

func (r *PgxTimeEntryRepository) ListEntriesInPeriod(ctx context.Context, period domain.Period, teacherID *string) ([]domain.TimeEntry, error) {
	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE date >= $1 AND date <= $2`
	args := []any{period.Start, period.End}
	if teacherID != nil {
		args = append(args, *teacherID)
		query += fmt.Sprintf(" AND teacher_id = $%d", len(args))
	}
	query += " ORDER BY date ASC;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.TimeEntry, 0)
	for rows.Next() {
		e, err := scanTimeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating time entry rows: %w", err)
	}
	return entries, nil
}

func (r *PgxTimeEntryRepository) UpdateEntry(ctx context.Context, entry domain.TimeEntry) error {
	query := `
		UPDATE time_entries
		SET date = $2, hours_worked = $3, hourly_rate = $4, total_amount = $5, notes = $6, last_updated_at = $7, last_updated_by = $8
		WHERE entry_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		entry.EntryID,
		entry.Date,
		entry.HoursWorked,
		entry.HourlyRate,
		entry.TotalAmount,
		entry.Notes,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update time entry %s: %w", entry.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTimeEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM time_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete time entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
