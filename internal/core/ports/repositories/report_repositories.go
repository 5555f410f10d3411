package repositories

import (
	"context"

	"github.com/hammamsawalma/edusystem/internal/core/domain"
)

// ReportRepository defines persistence operations for generated financial
// reports. Reports are immutable apart from the archived flag. Listing is
// cursor-paginated on generation time, newest first; the returned token
// is nil on the last page.
type ReportRepository interface {
	SaveReport(ctx context.Context, report domain.FinancialReport) error
	FindReportByID(ctx context.Context, reportID string) (*domain.FinancialReport, error)
	ListReports(ctx context.Context, reportType *domain.ReportType, limit int, nextToken *string) ([]domain.FinancialReport, *string, error)
	SetArchived(ctx context.Context, reportID string, archived bool) error
}
