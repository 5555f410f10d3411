package services

import (
	"context"

	"github.com/hammamsawalma/edusystem/internal/core/domain"
)

// AccountingSvcFacade is the financial aggregation engine. Every entry
// point takes the acting user explicitly; teachers are scoped to their own
// records. All reads inside one call are independent and may fan out, but
// a call either returns a complete aggregation or an error, never a
// partial result.
type AccountingSvcFacade interface {
	StudentRevenue(ctx context.Context, actor domain.Actor, period domain.Period, teacherID *string) (*domain.StudentRevenueReport, error)
	TeacherReconciliation(ctx context.Context, actor domain.Actor, period domain.Period, teacherID *string) (*domain.TeacherReconciliationReport, error)
	ExpenseSummary(ctx context.Context, actor domain.Actor, period domain.Period, category *string, status *domain.ExpenseStatus) (*domain.ExpenseReport, error)
	ProfitLoss(ctx context.Context, actor domain.Actor, period domain.Period) (*domain.ProfitLossSummary, error)
	CashFlow(ctx context.Context, actor domain.Actor, period domain.Period, granularity domain.Granularity) (*domain.CashFlowReport, error)
	Comparison(ctx context.Context, actor domain.Actor, current, previous domain.Period) (*domain.PeriodComparison, error)
}

// DashboardSvcFacade produces the fixed today/this-week/this-month
// rollups shown on the admin and teacher dashboards.
type DashboardSvcFacade interface {
	Stats(ctx context.Context, actor domain.Actor) (*domain.DashboardStats, error)
	TeacherStats(ctx context.Context, actor domain.Actor, teacherID *string) (*domain.TeacherDashboardStats, error)
}
