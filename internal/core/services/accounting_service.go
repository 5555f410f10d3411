package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/hammamsawalma/edusystem/internal/core/domain"
	portsrepo "github.com/hammamsawalma/edusystem/internal/core/ports/repositories"
	portssvc "github.com/hammamsawalma/edusystem/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// accountingService implements the financial aggregation engine. It only
// reads ledger records; the single write path (the student payment-summary
// resync) lives in the student payment service.
type accountingService struct {
	BaseService
	users           portsrepo.UserRepository
	students        portsrepo.StudentRepository
	studentPayments portsrepo.StudentPaymentRepository
	teacherPayments portsrepo.TeacherPaymentRepository
	expenses        portsrepo.ExpenseRepository
	timeEntries     portsrepo.TimeEntryRepository
	now             func() time.Time
}

// AccountingServiceOption is a functional option for configuring the
// accounting service.
type AccountingServiceOption func(*accountingService)

// WithAccountingClock overrides the service clock; tests use it to pin
// "now" for overdue checks.
func WithAccountingClock(now func() time.Time) AccountingServiceOption {
	return func(s *accountingService) {
		s.now = now
	}
}

// NewAccountingService creates the aggregation engine over the ledger
// repositories.
func NewAccountingService(repos portsrepo.RepositoryProvider, options ...AccountingServiceOption) portssvc.AccountingSvcFacade {
	svc := &accountingService{
		users:           repos.UserRepo,
		students:        repos.StudentRepo,
		studentPayments: repos.StudentPaymentRepo,
		teacherPayments: repos.TeacherPaymentRepo,
		expenses:        repos.ExpenseRepo,
		timeEntries:     repos.TimeEntryRepo,
		now:             time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountingSvcFacade = (*accountingService)(nil)

// StudentRevenue aggregates tuition payments per active student within the
// period. Students keep the repository's natural ordering. Pending sums
// include overdue payments; the overdue figures are the pending subset
// already past its due date.
func (s *accountingService) StudentRevenue(ctx context.Context, actor domain.Actor, period domain.Period, teacherID *string) (*domain.StudentRevenueReport, error) {
	scoped := actor.ScopeTeacher(teacherID)

	var (
		students []domain.Student
		payments []domain.StudentPayment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		students, err = s.students.ListStudents(gctx, portsrepo.StudentFilter{TeacherID: scoped, ActiveOnly: true})
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = s.studentPayments.ListPaymentsInPeriod(gctx, period, scoped)
		return err
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to fetch student revenue data")
		return nil, fmt.Errorf("failed to fetch student revenue data: %w", err)
	}

	byStudent := make(map[string][]domain.StudentPayment, len(students))
	for _, p := range payments {
		byStudent[p.StudentID] = append(byStudent[p.StudentID], p)
	}

	now := s.now()
	report := &domain.StudentRevenueReport{
		Period:   period,
		Students: make([]domain.StudentRevenue, 0, len(students)),
	}
	report.Totals.CompletedTotal = decimal.Zero
	report.Totals.PendingTotal = decimal.Zero
	report.Totals.OverdueTotal = decimal.Zero
	report.Totals.EstimatedTotalFee = decimal.Zero
	report.Totals.RemainingBalance = decimal.Zero

	for _, student := range students {
		row := domain.StudentRevenue{
			StudentID:      student.StudentID,
			StudentName:    student.Name,
			TeacherID:      student.TeacherID,
			CompletedTotal: decimal.Zero,
			PendingTotal:   decimal.Zero,
			OverdueTotal:   decimal.Zero,
		}
		for _, p := range byStudent[student.StudentID] {
			switch p.Status {
			case domain.StudentPaymentCompleted:
				row.CompletedTotal = row.CompletedTotal.Add(p.Amount)
				row.CompletedCount++
			case domain.StudentPaymentPending:
				row.PendingTotal = row.PendingTotal.Add(p.Amount)
				row.PendingCount++
				if p.IsOverdue(now) {
					row.OverdueTotal = row.OverdueTotal.Add(p.Amount)
					row.OverdueCount++
				}
			}
		}

		// No fee schedule entity exists; completed + pending stands in for
		// the enrollment fee.
		row.EstimatedTotalFee = row.CompletedTotal.Add(row.PendingTotal)
		row.RemainingBalance = maxZero(row.EstimatedTotalFee.Sub(row.CompletedTotal))

		report.Students = append(report.Students, row)
		report.Totals.CompletedTotal = report.Totals.CompletedTotal.Add(row.CompletedTotal)
		report.Totals.PendingTotal = report.Totals.PendingTotal.Add(row.PendingTotal)
		report.Totals.OverdueTotal = report.Totals.OverdueTotal.Add(row.OverdueTotal)
		report.Totals.EstimatedTotalFee = report.Totals.EstimatedTotalFee.Add(row.EstimatedTotalFee)
		report.Totals.RemainingBalance = report.Totals.RemainingBalance.Add(row.RemainingBalance)
	}

	s.LogInfo(ctx, "Student revenue report generated",
		slog.Int("student_count", len(report.Students)),
		slog.Int("payment_count", len(payments)))
	return report, nil
}

// TeacherReconciliation compares earnings (from time entries) against paid
// and pending payouts for every teacher, including teachers with no
// activity in the period. Admins may restrict the report to one teacher;
// teacher actors are always restricted to themselves. The unpaid figure is
// clamped at zero so earnings are never counted against both paid and
// pending twice.
func (s *accountingService) TeacherReconciliation(ctx context.Context, actor domain.Actor, period domain.Period, teacherID *string) (*domain.TeacherReconciliationReport, error) {
	scoped := actor.ScopeTeacher(teacherID)

	var (
		teachers []domain.User
		entries  []domain.TimeEntry
		payments []domain.TeacherPayment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teachers, err = s.users.ListTeachers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = s.timeEntries.ListEntriesInPeriod(gctx, period, scoped)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = s.teacherPayments.ListPaymentsInPeriod(gctx, period, scoped)
		return err
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to fetch teacher reconciliation data")
		return nil, fmt.Errorf("failed to fetch teacher reconciliation data: %w", err)
	}

	type teacherAccum struct {
		hours    decimal.Decimal
		earnings decimal.Decimal
		paid     decimal.Decimal
		pending  decimal.Decimal
	}
	accum := make(map[string]*teacherAccum)
	get := func(teacherID string) *teacherAccum {
		a, ok := accum[teacherID]
		if !ok {
			a = &teacherAccum{
				hours:    decimal.Zero,
				earnings: decimal.Zero,
				paid:     decimal.Zero,
				pending:  decimal.Zero,
			}
			accum[teacherID] = a
		}
		return a
	}

	for _, e := range entries {
		a := get(e.TeacherID)
		a.hours = a.hours.Add(e.HoursWorked)
		a.earnings = a.earnings.Add(e.HoursWorked.Mul(e.HourlyRate))
	}
	for _, p := range payments {
		a := get(p.TeacherID)
		switch p.Status {
		case domain.TeacherPaymentPaid:
			a.paid = a.paid.Add(p.Amount)
		case domain.TeacherPaymentPending, domain.TeacherPaymentApproved:
			a.pending = a.pending.Add(p.Amount)
		}
	}

	report := &domain.TeacherReconciliationReport{
		Period:   period,
		Teachers: make([]domain.TeacherReconciliation, 0, len(teachers)),
	}
	report.Totals.TotalHours = decimal.Zero
	report.Totals.TotalEarnings = decimal.Zero
	report.Totals.TotalPaid = decimal.Zero
	report.Totals.TotalPending = decimal.Zero
	report.Totals.UnpaidEarnings = decimal.Zero

	for _, teacher := range teachers {
		if scoped != nil && teacher.UserID != *scoped {
			continue
		}
		a := accum[teacher.UserID]
		if a == nil {
			a = &teacherAccum{
				hours:    decimal.Zero,
				earnings: decimal.Zero,
				paid:     decimal.Zero,
				pending:  decimal.Zero,
			}
		}

		unpaid := maxZero(a.earnings.Sub(a.paid).Sub(a.pending))
		row := domain.TeacherReconciliation{
			TeacherID:      teacher.UserID,
			TeacherName:    teacher.Name,
			TotalHours:     a.hours,
			TotalEarnings:  a.earnings,
			TotalPaid:      a.paid,
			TotalPending:   a.pending,
			UnpaidEarnings: unpaid,
			DeficitAmount:  unpaid,
			IsPaidUp:       unpaid.IsZero(),
		}

		report.Teachers = append(report.Teachers, row)
		report.Totals.TotalHours = report.Totals.TotalHours.Add(row.TotalHours)
		report.Totals.TotalEarnings = report.Totals.TotalEarnings.Add(row.TotalEarnings)
		report.Totals.TotalPaid = report.Totals.TotalPaid.Add(row.TotalPaid)
		report.Totals.TotalPending = report.Totals.TotalPending.Add(row.TotalPending)
		report.Totals.UnpaidEarnings = report.Totals.UnpaidEarnings.Add(row.UnpaidEarnings)
	}

	s.LogInfo(ctx, "Teacher reconciliation report generated",
		slog.Int("teacher_count", len(report.Teachers)),
		slog.Int("entry_count", len(entries)),
		slog.Int("payment_count", len(payments)))
	return report, nil
}

// ExpenseSummary breaks the period's expenses down by category and by
// month. The status filter defaults to approved. Category keys are the
// raw submitted strings, compared case-sensitively.
func (s *accountingService) ExpenseSummary(ctx context.Context, actor domain.Actor, period domain.Period, category *string, status *domain.ExpenseStatus) (*domain.ExpenseReport, error) {
	if err := s.RequireAdmin(actor); err != nil {
		s.LogWarn(ctx, "Non-admin requested expense summary", slog.String("actor_id", actor.ID))
		return nil, err
	}

	effectiveStatus := domain.ExpenseApproved
	if status != nil {
		effectiveStatus = *status
	}

	expenses, err := s.expenses.ListExpensesInPeriod(ctx, period, portsrepo.ExpenseFilter{
		Category: category,
		Status:   &effectiveStatus,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch expenses for summary")
		return nil, fmt.Errorf("failed to fetch expenses: %w", err)
	}

	report := &domain.ExpenseReport{
		Period:     period,
		Status:     effectiveStatus,
		ByCategory: summarizeByCategory(expenses),
		ByMonth:    summarizeByMonth(expenses),
		Total:      decimal.Zero,
		Count:      len(expenses),
	}
	for _, e := range expenses {
		report.Total = report.Total.Add(e.Amount)
	}

	s.LogInfo(ctx, "Expense summary generated",
		slog.Int("expense_count", len(expenses)),
		slog.Int("category_count", len(report.ByCategory)))
	return report, nil
}

// ProfitLoss computes the period's revenue against expenses. Revenue is
// completed student payments; expenses are paid teacher payments plus
// approved general expenses.
func (s *accountingService) ProfitLoss(ctx context.Context, actor domain.Actor, period domain.Period) (*domain.ProfitLossSummary, error) {
	if err := s.RequireAdmin(actor); err != nil {
		s.LogWarn(ctx, "Non-admin requested profit/loss", slog.String("actor_id", actor.ID))
		return nil, err
	}
	return s.profitLoss(ctx, period)
}

func (s *accountingService) profitLoss(ctx context.Context, period domain.Period) (*domain.ProfitLossSummary, error) {
	inflows, outflows, expenses, err := s.fetchLedger(ctx, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch profit/loss data")
		return nil, fmt.Errorf("failed to fetch profit/loss data: %w", err)
	}

	summary := &domain.ProfitLossSummary{Period: period}
	summary.Revenue.Total = decimal.Zero
	for _, p := range inflows {
		if p.Status == domain.StudentPaymentCompleted {
			summary.Revenue.Total = summary.Revenue.Total.Add(p.Amount)
			summary.Revenue.Count++
		}
	}

	summary.Expenses.TeacherPayments = decimal.Zero
	for _, p := range outflows {
		if p.Status == domain.TeacherPaymentPaid {
			summary.Expenses.TeacherPayments = summary.Expenses.TeacherPayments.Add(p.Amount)
		}
	}

	summary.Expenses.General = decimal.Zero
	for _, e := range expenses {
		summary.Expenses.General = summary.Expenses.General.Add(e.Amount)
	}
	summary.Expenses.Total = summary.Expenses.TeacherPayments.Add(summary.Expenses.General)
	summary.Expenses.Breakdown = summarizeByCategory(expenses)

	summary.NetIncome = summary.Revenue.Total.Sub(summary.Expenses.Total)
	summary.ProfitMargin = profitMargin(summary.NetIncome, summary.Revenue.Total)

	// Tri-state status decided on the unrounded net income, so a fraction
	// of a cent is still a profit or a loss, never a rounding bucket.
	switch {
	case summary.NetIncome.IsPositive():
		summary.Status = domain.StatusProfit
	case summary.NetIncome.IsNegative():
		summary.Status = domain.StatusLoss
	default:
		summary.Status = domain.StatusBreakeven
	}

	return summary, nil
}

// CashFlow buckets inflows against outflows at the requested granularity.
// The bucket set is the union of keys seen in any source series, so a
// bucket with only outflow still appears with zero inflow.
func (s *accountingService) CashFlow(ctx context.Context, actor domain.Actor, period domain.Period, granularity domain.Granularity) (*domain.CashFlowReport, error) {
	if err := s.RequireAdmin(actor); err != nil {
		s.LogWarn(ctx, "Non-admin requested cash flow", slog.String("actor_id", actor.ID))
		return nil, err
	}

	inflows, outflows, expenses, err := s.fetchLedger(ctx, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch cash flow data")
		return nil, fmt.Errorf("failed to fetch cash flow data: %w", err)
	}

	inflowByKey := make(map[string]decimal.Decimal)
	outflowByKey := make(map[string]decimal.Decimal)
	addTo := func(m map[string]decimal.Decimal, key string, amount decimal.Decimal) {
		if cur, ok := m[key]; ok {
			m[key] = cur.Add(amount)
		} else {
			m[key] = amount
		}
	}

	for _, p := range inflows {
		if p.Status == domain.StudentPaymentCompleted {
			addTo(inflowByKey, granularity.BucketKey(p.PaymentDate), p.Amount)
		}
	}
	for _, p := range outflows {
		if p.Status == domain.TeacherPaymentPaid {
			addTo(outflowByKey, granularity.BucketKey(p.PaymentDate), p.Amount)
		}
	}
	for _, e := range expenses {
		addTo(outflowByKey, granularity.BucketKey(e.Date), e.Amount)
	}

	keySet := make(map[string]struct{}, len(inflowByKey)+len(outflowByKey))
	for k := range inflowByKey {
		keySet[k] = struct{}{}
	}
	for k := range outflowByKey {
		keySet[k] = struct{}{}
	}
	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	// Bucket keys are zero-padded and year-first, so lexicographic order
	// is chronological order for every granularity.
	sort.Strings(keys)

	report := &domain.CashFlowReport{
		Period:       period,
		Granularity:  granularity,
		Buckets:      make([]domain.CashFlowBucket, 0, len(keys)),
		TotalInflow:  decimal.Zero,
		TotalOutflow: decimal.Zero,
	}

	running := decimal.Zero
	for _, key := range keys {
		inflow, ok := inflowByKey[key]
		if !ok {
			inflow = decimal.Zero
		}
		outflow, ok := outflowByKey[key]
		if !ok {
			outflow = decimal.Zero
		}
		net := inflow.Sub(outflow)
		running = running.Add(net)

		report.Buckets = append(report.Buckets, domain.CashFlowBucket{
			Key:          key,
			Inflow:       inflow,
			Outflow:      outflow,
			NetCashFlow:  net,
			RunningTotal: running,
		})
		report.TotalInflow = report.TotalInflow.Add(inflow)
		report.TotalOutflow = report.TotalOutflow.Add(outflow)
	}

	report.NetCashFlow = report.TotalInflow.Sub(report.TotalOutflow)
	report.FinalBalance = running

	s.LogInfo(ctx, "Cash flow report generated",
		slog.String("granularity", string(granularity)),
		slog.Int("bucket_count", len(report.Buckets)))
	return report, nil
}

// Comparison computes the profit/loss summary independently for two
// periods and derives delta/percentage-change figures. Overlapping
// periods are not rejected.
func (s *accountingService) Comparison(ctx context.Context, actor domain.Actor, current, previous domain.Period) (*domain.PeriodComparison, error) {
	if err := s.RequireAdmin(actor); err != nil {
		s.LogWarn(ctx, "Non-admin requested period comparison", slog.String("actor_id", actor.ID))
		return nil, err
	}

	var (
		cur  *domain.ProfitLossSummary
		prev *domain.ProfitLossSummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cur, err = s.profitLoss(gctx, current)
		return err
	})
	g.Go(func() error {
		var err error
		prev, err = s.profitLoss(gctx, previous)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	comparison := &domain.PeriodComparison{
		Current:   *cur,
		Previous:  *prev,
		Revenue:   compareDelta(cur.Revenue.Total, prev.Revenue.Total),
		Expenses:  compareDelta(cur.Expenses.Total, prev.Expenses.Total),
		NetIncome: compareDelta(cur.NetIncome, prev.NetIncome),
	}

	s.LogInfo(ctx, "Period comparison generated",
		slog.String("current_net", cur.NetIncome.String()),
		slog.String("previous_net", prev.NetIncome.String()))
	return comparison, nil
}

// fetchLedger fans out the three independent reads every business-wide
// report needs: student payments, teacher payments, and approved expenses
// within the period. Reads are mutually independent so they run
// concurrently; if any fails the whole fetch fails and no partial data is
// returned.
func (s *accountingService) fetchLedger(ctx context.Context, period domain.Period) ([]domain.StudentPayment, []domain.TeacherPayment, []domain.Expense, error) {
	var (
		inflows  []domain.StudentPayment
		outflows []domain.TeacherPayment
		expenses []domain.Expense
	)
	approved := domain.ExpenseApproved

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		inflows, err = s.studentPayments.ListPaymentsInPeriod(gctx, period, nil)
		return err
	})
	g.Go(func() error {
		var err error
		outflows, err = s.teacherPayments.ListPaymentsInPeriod(gctx, period, nil)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.expenses.ListExpensesInPeriod(gctx, period, portsrepo.ExpenseFilter{Status: &approved})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return inflows, outflows, expenses, nil
}

// summarizeByCategory groups expenses by their raw category string and
// sums amount/count/average, sorted descending by total (category name
// breaks ties for a stable order).
func summarizeByCategory(expenses []domain.Expense) []domain.ExpenseCategorySummary {
	totals := make(map[string]*domain.ExpenseCategorySummary)
	for _, e := range expenses {
		cs, ok := totals[e.Category]
		if !ok {
			cs = &domain.ExpenseCategorySummary{Category: e.Category, Total: decimal.Zero}
			totals[e.Category] = cs
		}
		cs.Total = cs.Total.Add(e.Amount)
		cs.Count++
	}

	result := make([]domain.ExpenseCategorySummary, 0, len(totals))
	for _, cs := range totals {
		cs.Average = cs.Total.Div(decimal.NewFromInt(int64(cs.Count))).Round(2)
		result = append(result, *cs)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Total.Equal(result[j].Total) {
			return result[i].Total.GreaterThan(result[j].Total)
		}
		return result[i].Category < result[j].Category
	})
	return result
}

// summarizeByMonth groups expenses by calendar month, sorted
// chronologically ascending.
func summarizeByMonth(expenses []domain.Expense) []domain.ExpenseMonthSummary {
	totals := make(map[string]*domain.ExpenseMonthSummary)
	for _, e := range expenses {
		key := e.Date.Format("2006-01")
		ms, ok := totals[key]
		if !ok {
			ms = &domain.ExpenseMonthSummary{Month: key, Total: decimal.Zero}
			totals[key] = ms
		}
		ms.Total = ms.Total.Add(e.Amount)
		ms.Count++
	}

	result := make([]domain.ExpenseMonthSummary, 0, len(totals))
	for _, ms := range totals {
		result = append(result, *ms)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })
	return result
}

// profitMargin is netIncome/revenue as a percentage, rounded
// half-away-from-zero to two decimal places, or zero when there is no
// revenue.
func profitMargin(netIncome, revenue decimal.Decimal) decimal.Decimal {
	if !revenue.IsPositive() {
		return decimal.Zero
	}
	return netIncome.Div(revenue).Mul(decimal.NewFromInt(100)).Round(2)
}

// compareDelta derives the movement between two figures. A zero base maps
// to 100% when the current figure is positive and 0% otherwise, so the
// comparison never divides by zero.
func compareDelta(current, previous decimal.Decimal) domain.ComparisonDelta {
	d := domain.ComparisonDelta{
		Current:  current,
		Previous: previous,
		Delta:    current.Sub(previous),
	}
	if previous.IsZero() {
		if current.IsPositive() {
			d.PercentageChange = decimal.NewFromInt(100)
		} else {
			d.PercentageChange = decimal.Zero
		}
		return d
	}
	d.PercentageChange = current.Sub(previous).Div(previous.Abs()).Mul(decimal.NewFromInt(100)).Round(2)
	return d
}

func maxZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
