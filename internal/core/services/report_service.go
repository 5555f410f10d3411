package services

import (
	"context"
	"encoding/json"
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

// reportService persists aggregation snapshots. Generating a report runs
// the matching engine aggregation and stores its JSON payload verbatim;
// the snapshot is immutable afterwards apart from the archived flag.
type reportService struct {
	BaseService
	reports    portsrepo.ReportRepository
	accounting portssvc.AccountingSvcFacade
	now        func() time.Time
}

// ReportServiceOption configures a reportService.
type ReportServiceOption func(*reportService)

// WithReportClock overrides the clock used for generation timestamps.
func WithReportClock(now func() time.Time) ReportServiceOption {
	return func(s *reportService) {
		s.now = now
	}
}

// NewReportService creates a new report service.
func NewReportService(reports portsrepo.ReportRepository, accounting portssvc.AccountingSvcFacade, options ...ReportServiceOption) portssvc.ReportSvcFacade {
	s := &reportService{
		reports:    reports,
		accounting: accounting,
		now:        time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

var _ portssvc.ReportSvcFacade = (*reportService)(nil)

func (s *reportService) GenerateReport(ctx context.Context, actor domain.Actor, req dto.GenerateReportRequest) (*domain.FinancialReport, error) {
	reportType := domain.ReportType(req.ReportType)
	if !domain.ValidReportType(reportType) {
		return nil, fmt.Errorf("%w: unknown report type %q", apperrors.ErrValidation, req.ReportType)
	}
	if req.StartDate == "" || req.EndDate == "" {
		return nil, fmt.Errorf("%w: startDate and endDate", apperrors.ErrMissingParameter)
	}

	period, err := domain.ResolvePeriod(req.StartDate, req.EndDate, s.now())
	if err != nil {
		return nil, err
	}

	payload, err := s.runAggregation(ctx, actor, reportType, period)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		s.LogError(ctx, err, "Failed to marshal report payload", slog.String("report_type", string(reportType)))
		return nil, fmt.Errorf("failed to marshal report payload: %w", err)
	}

	report := domain.FinancialReport{
		ReportID:    uuid.NewString(),
		ReportType:  reportType,
		PeriodStart: period.Start,
		PeriodEnd:   period.End,
		GeneratedBy: actor.ID,
		GeneratedAt: s.now(),
		Payload:     raw,
	}

	if err := s.reports.SaveReport(ctx, report); err != nil {
		s.LogError(ctx, err, "Failed to save report", slog.String("report_type", string(reportType)))
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	s.LogInfo(ctx, "Report generated",
		slog.String("report_id", report.ReportID),
		slog.String("report_type", string(reportType)))
	return &report, nil
}

// runAggregation dispatches to the engine call matching the report type.
// Role checks happen inside the engine, so a teacher can only snapshot
// the aggregations they are allowed to read.
func (s *reportService) runAggregation(ctx context.Context, actor domain.Actor, reportType domain.ReportType, period domain.Period) (any, error) {
	switch reportType {
	case domain.ReportProfitLoss:
		return s.accounting.ProfitLoss(ctx, actor, period)
	case domain.ReportCashFlow:
		return s.accounting.CashFlow(ctx, actor, period, domain.GranularityMonthly)
	case domain.ReportStudentRevenue:
		return s.accounting.StudentRevenue(ctx, actor, period, nil)
	case domain.ReportTeacherReconciliation:
		return s.accounting.TeacherReconciliation(ctx, actor, period, nil)
	case domain.ReportExpenseSummary:
		return s.accounting.ExpenseSummary(ctx, actor, period, nil, nil)
	default:
		return nil, fmt.Errorf("%w: unknown report type %q", apperrors.ErrValidation, reportType)
	}
}

func (s *reportService) GetReportByID(ctx context.Context, actor domain.Actor, reportID string) (*domain.FinancialReport, error) {
	report, err := s.reports.FindReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && report.GeneratedBy != actor.ID {
		return nil, apperrors.ErrForbidden
	}
	return report, nil
}

func (s *reportService) ListReports(ctx context.Context, actor domain.Actor, reportType *domain.ReportType, limit int, nextToken *string) ([]domain.FinancialReport, *string, error) {
	if err := s.RequireAdmin(actor); err != nil {
		return nil, nil, err
	}
	if reportType != nil && !domain.ValidReportType(*reportType) {
		return nil, nil, fmt.Errorf("%w: unknown report type %q", apperrors.ErrValidation, *reportType)
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.reports.ListReports(ctx, reportType, limit, nextToken)
}

func (s *reportService) SetArchived(ctx context.Context, actor domain.Actor, reportID string, archived bool) error {
	if err := s.RequireAdmin(actor); err != nil {
		return err
	}

	if _, err := s.reports.FindReportByID(ctx, reportID); err != nil {
		return err
	}

	if err := s.reports.SetArchived(ctx, reportID, archived); err != nil {
		s.LogError(ctx, err, "Failed to set report archived flag", slog.String("report_id", reportID))
		return fmt.Errorf("failed to set report archived flag: %w", err)
	}

	s.LogInfo(ctx, "Report archived flag updated",
		slog.String("report_id", reportID),
		slog.Bool("archived", archived))
	return nil
}
