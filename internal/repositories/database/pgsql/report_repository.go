package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hammamsawalma/edusystem/internal/apperrors"
	"github.com/hammamsawalma/edusystem/internal/core/domain"
	portsrepo "github.com/hammamsawalma/edusystem/internal/core/ports/repositories"
	"github.com/hammamsawalma/edusystem/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReportRepository struct {
	db *pgxpool.Pool
}

func newPgxReportRepository(db *pgxpool.Pool) portsrepo.ReportRepository {
	return &PgxReportRepository{db: db}
}

var _ portsrepo.ReportRepository = (*PgxReportRepository)(nil)

const reportColumns = `report_id, report_type, period_start, period_end, generated_by, generated_at, payload, archived`

func scanReport(row pgx.Row) (domain.FinancialReport, error) {
	var rep domain.FinancialReport
	err := row.Scan(
		&rep.ReportID,
		&rep.ReportType,
		&rep.PeriodStart,
		&rep.PeriodEnd,
		&rep.GeneratedBy,
		&rep.GeneratedAt,
		&rep.Payload,
		&rep.Archived,
	)
	return rep, err
}

func (r *PgxReportRepository) SaveReport(ctx context.Context, report domain.FinancialReport) error {
	query := `
		INSERT INTO financial_reports (report_id, report_type, period_start, period_end, generated_by, generated_at, payload, archived)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db.Exec(ctx, query,
		report.ReportID,
		report.ReportType,
		report.PeriodStart,
		report.PeriodEnd,
		report.GeneratedBy,
		report.GeneratedAt,
		report.Payload,
		report.Archived,
	)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func (r *PgxReportRepository) FindReportByID(ctx context.Context, reportID string) (*domain.FinancialReport, error) {
	query := `SELECT ` + reportColumns + ` FROM financial_reports WHERE report_id = $1;`
	report, err := scanReport(r.db.QueryRow(ctx, query, reportID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find report by ID %s: %w", reportID, err)
	}
	return &report, nil
}

// ListReports returns reports newest first, cursor-paginated on the
// generation timestamp. It fetches one extra row to decide whether a next
// page exists.
func (r *PgxReportRepository) ListReports(ctx context.Context, reportType *domain.ReportType, limit int, nextToken *string) ([]domain.FinancialReport, *string, error) {
	query := `SELECT ` + reportColumns + ` FROM financial_reports WHERE 1=1`
	args := []any{}
	if reportType != nil {
		args = append(args, *reportType)
		query += fmt.Sprintf(" AND report_type = $%d", len(args))
	}
	if nextToken != nil {
		before, err := pagination.DecodeDateBasedToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, before)
		query += fmt.Sprintf(" AND generated_at < $%d", len(args))
	}
	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY generated_at DESC LIMIT $%d;", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	reports := make([]domain.FinancialReport, 0)
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating report rows: %w", err)
	}

	var token *string
	if len(reports) > limit {
		reports = reports[:limit]
		t := pagination.EncodeDateBasedToken(reports[limit-1].GeneratedAt)
		token = &t
	}
	return reports, token, nil
}

func (r *PgxReportRepository) SetArchived(ctx context.Context, reportID string, archived bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE financial_reports SET archived = $2 WHERE report_id = $1;`, reportID, archived)
	if err != nil {
		return fmt.Errorf("failed to set archived flag for report %s: %w", reportID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
