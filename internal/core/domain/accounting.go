package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StudentRevenue is the per-student slice of a revenue report. Payments in
// the period are partitioned by status; overdue means pending past its due
// date. EstimatedTotalFee stands in for an enrollment fee (completed +
// pending) since no fee schedule entity exists.
type StudentRevenue struct {
	StudentID         string          `json:"studentID"`
	StudentName       string          `json:"studentName"`
	TeacherID         string          `json:"teacherID"`
	CompletedTotal    decimal.Decimal `json:"completedTotal"`
	CompletedCount    int             `json:"completedCount"`
	PendingTotal      decimal.Decimal `json:"pendingTotal"`
	PendingCount      int             `json:"pendingCount"`
	OverdueTotal      decimal.Decimal `json:"overdueTotal"`
	OverdueCount      int             `json:"overdueCount"`
	EstimatedTotalFee decimal.Decimal `json:"estimatedTotalFee"`
	RemainingBalance  decimal.Decimal `json:"remainingBalance"`
}

// StudentRevenueReport aggregates StudentRevenue rows for a period.
// Students keeps the repository's natural ordering.
type StudentRevenueReport struct {
	Period   Period           `json:"period"`
	Students []StudentRevenue `json:"students"`
	Totals   struct {
		CompletedTotal    decimal.Decimal `json:"completedTotal"`
		PendingTotal      decimal.Decimal `json:"pendingTotal"`
		OverdueTotal      decimal.Decimal `json:"overdueTotal"`
		EstimatedTotalFee decimal.Decimal `json:"estimatedTotalFee"`
		RemainingBalance  decimal.Decimal `json:"remainingBalance"`
	} `json:"totals"`
}

// TeacherReconciliation compares what a teacher earned (from time entries)
// against what has been paid or is queued for payment. UnpaidEarnings is
// clamped at zero: earnings are never double-counted against both paid and
// pending amounts, and the unpaid figure never goes negative.
type TeacherReconciliation struct {
	TeacherID      string          `json:"teacherID"`
	TeacherName    string          `json:"teacherName"`
	TotalHours     decimal.Decimal `json:"totalHours"`
	TotalEarnings  decimal.Decimal `json:"totalEarnings"`
	TotalPaid      decimal.Decimal `json:"totalPaid"`
	TotalPending   decimal.Decimal `json:"totalPending"`
	UnpaidEarnings decimal.Decimal `json:"unpaidEarnings"`
	DeficitAmount  decimal.Decimal `json:"deficitAmount"`
	IsPaidUp       bool            `json:"isPaidUp"`
}

// TeacherReconciliationReport covers ALL teachers: those without activity
// in the period appear with zeroed fields.
type TeacherReconciliationReport struct {
	Period   Period                  `json:"period"`
	Teachers []TeacherReconciliation `json:"teachers"`
	Totals   struct {
		TotalHours     decimal.Decimal `json:"totalHours"`
		TotalEarnings  decimal.Decimal `json:"totalEarnings"`
		TotalPaid      decimal.Decimal `json:"totalPaid"`
		TotalPending   decimal.Decimal `json:"totalPending"`
		UnpaidEarnings decimal.Decimal `json:"unpaidEarnings"`
	} `json:"totals"`
}

// ExpenseCategorySummary sums expenses sharing one raw category string.
type ExpenseCategorySummary struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
	Average  decimal.Decimal `json:"average"`
}

// ExpenseMonthSummary sums expenses for one calendar month.
type ExpenseMonthSummary struct {
	Month string          `json:"month"` // "2006-01"
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// ExpenseReport breaks a period's expenses down by category and by month.
type ExpenseReport struct {
	Period     Period                   `json:"period"`
	Status     ExpenseStatus            `json:"status"`
	ByCategory []ExpenseCategorySummary `json:"byCategory"`
	ByMonth    []ExpenseMonthSummary    `json:"byMonth"`
	Total      decimal.Decimal          `json:"total"`
	Count      int                      `json:"count"`
}

// ProfitLossStatus is the tri-state sign of net income. Zero is exactly
// breakeven, decided on the unrounded figure.
type ProfitLossStatus string

const (
	StatusProfit    ProfitLossStatus = "profit"
	StatusLoss      ProfitLossStatus = "loss"
	StatusBreakeven ProfitLossStatus = "breakeven"
)

// ProfitLossSummary is the period's revenue vs expenses. Revenue counts
// completed student payments; expenses count paid teacher payments plus
// approved general expenses. ProfitMargin is a percentage rounded
// half-away-from-zero to two decimal places.
type ProfitLossSummary struct {
	Period  Period `json:"period"`
	Revenue struct {
		Total decimal.Decimal `json:"total"`
		Count int             `json:"count"`
	} `json:"revenue"`
	Expenses struct {
		Total           decimal.Decimal          `json:"total"`
		TeacherPayments decimal.Decimal          `json:"teacherPayments"`
		General         decimal.Decimal          `json:"general"`
		Breakdown       []ExpenseCategorySummary `json:"breakdown"` // descending by total
	} `json:"expenses"`
	NetIncome    decimal.Decimal  `json:"netIncome"`
	ProfitMargin decimal.Decimal  `json:"profitMargin"`
	Status       ProfitLossStatus `json:"status"`
}

// CashFlowBucket is one time bucket of a cash-flow report. RunningTotal
// accumulates NetCashFlow across buckets in ascending key order, seeded
// at zero.
type CashFlowBucket struct {
	Key          string          `json:"key"`
	Inflow       decimal.Decimal `json:"inflow"`
	Outflow      decimal.Decimal `json:"outflow"`
	NetCashFlow  decimal.Decimal `json:"netCashFlow"`
	RunningTotal decimal.Decimal `json:"runningTotal"`
}

// CashFlowReport buckets inflows (completed student payments) against
// outflows (paid teacher payments + approved expenses). Buckets are the
// union of keys appearing in any source series; the final bucket's running
// total equals TotalInflow - TotalOutflow exactly.
type CashFlowReport struct {
	Period       Period           `json:"period"`
	Granularity  Granularity      `json:"granularity"`
	Buckets      []CashFlowBucket `json:"buckets"`
	TotalInflow  decimal.Decimal  `json:"totalInflow"`
	TotalOutflow decimal.Decimal  `json:"totalOutflow"`
	NetCashFlow  decimal.Decimal  `json:"netCashFlow"`
	FinalBalance decimal.Decimal  `json:"finalBalance"`
}

// ComparisonDelta is the absolute and relative movement of one figure
// between two periods. PercentageChange of a zero base is 100 when the
// current figure is positive and 0 otherwise.
type ComparisonDelta struct {
	Current          decimal.Decimal `json:"current"`
	Previous         decimal.Decimal `json:"previous"`
	Delta            decimal.Decimal `json:"delta"`
	PercentageChange decimal.Decimal `json:"percentageChange"`
}

// PeriodComparison holds two independently computed profit/loss summaries
// plus deltas. Periods are not validated for disjointness.
type PeriodComparison struct {
	Current   ProfitLossSummary `json:"current"`
	Previous  ProfitLossSummary `json:"previous"`
	Revenue   ComparisonDelta   `json:"revenue"`
	Expenses  ComparisonDelta   `json:"expenses"`
	NetIncome ComparisonDelta   `json:"netIncome"`
}

// PeriodStats is one dashboard rollup window.
type PeriodStats struct {
	Period   Period          `json:"period"`
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
	Payments int             `json:"payments"`
}

// DashboardStats is the admin quick view: fixed today / this week / this
// month windows built on the same sum primitives as cash flow.
type DashboardStats struct {
	Today          PeriodStats `json:"today"`
	ThisWeek       PeriodStats `json:"thisWeek"`
	ThisMonth      PeriodStats `json:"thisMonth"`
	ActiveStudents int         `json:"activeStudents"`
}

// TeacherPeriodStats is one window of a teacher's dashboard.
type TeacherPeriodStats struct {
	Period   Period          `json:"period"`
	Hours    decimal.Decimal `json:"hours"`
	Earnings decimal.Decimal `json:"earnings"`
}

// TeacherDashboardStats is the teacher quick view plus the outstanding
// reconciliation balance for the current year.
type TeacherDashboardStats struct {
	TeacherID      string             `json:"teacherID"`
	Today          TeacherPeriodStats `json:"today"`
	ThisWeek       TeacherPeriodStats `json:"thisWeek"`
	ThisMonth      TeacherPeriodStats `json:"thisMonth"`
	UnpaidEarnings decimal.Decimal    `json:"unpaidEarnings"`
}

// StartOfWeek returns the Monday 00:00 preceding or equal to t.
func StartOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// StartOfDay returns midnight of t's day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfMonth returns the first instant of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
