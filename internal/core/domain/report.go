package domain

import (
	"encoding/json"
	"time"
)

// ReportType selects which aggregation a generated report snapshots.
type ReportType string

const (
	ReportProfitLoss            ReportType = "profit_loss"
	ReportCashFlow              ReportType = "cash_flow"
	ReportStudentRevenue        ReportType = "student_revenue"
	ReportTeacherReconciliation ReportType = "teacher_reconciliation"
	ReportExpenseSummary        ReportType = "expense_summary"
)

// ValidReportType reports whether t names a supported report.
func ValidReportType(t ReportType) bool {
	switch t {
	case ReportProfitLoss, ReportCashFlow, ReportStudentRevenue,
		ReportTeacherReconciliation, ReportExpenseSummary:
		return true
	}
	return false
}

// FinancialReport is a persisted aggregation snapshot. Reports are
// immutable once generated; only the Archived flag may change.
type FinancialReport struct {
	ReportID    string          `json:"reportID"`
	ReportType  ReportType      `json:"reportType"`
	PeriodStart time.Time       `json:"periodStart"`
	PeriodEnd   time.Time       `json:"periodEnd"`
	GeneratedBy string          `json:"generatedBy"` // UserID Reference
	GeneratedAt time.Time       `json:"generatedAt"`
	Payload     json.RawMessage `json:"payload"`
	Archived    bool            `json:"archived"`
}
