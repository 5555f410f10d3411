package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StudentPaymentStatus tracks the lifecycle of a tuition payment.
type StudentPaymentStatus string

const (
	StudentPaymentCompleted StudentPaymentStatus = "completed"
	StudentPaymentPending   StudentPaymentStatus = "pending"
	StudentPaymentFailed    StudentPaymentStatus = "failed"
)

// StudentPayment is a tuition payment from a student. Amount must be
// strictly positive.
type StudentPayment struct {
	PaymentID    string               `json:"paymentID"`
	StudentID    string               `json:"studentID"`
	TeacherID    string               `json:"teacherID"`
	Amount       decimal.Decimal      `json:"amount"`
	CurrencyCode string               `json:"currencyCode"`
	Status       StudentPaymentStatus `json:"status"`
	PaymentDate  time.Time            `json:"paymentDate"`
	DueDate      *time.Time           `json:"dueDate,omitempty"`
	Notes        string               `json:"notes,omitempty"`
	AuditFields
}

// IsOverdue reports whether the payment is pending past its due date.
func (p StudentPayment) IsOverdue(now time.Time) bool {
	return p.Status == StudentPaymentPending && p.DueDate != nil && p.DueDate.Before(now)
}

// TeacherPaymentStatus tracks the approval lifecycle of a payout to a
// teacher. Transitions are monotonic: pending -> approved|rejected,
// approved -> paid. The aggregation engine only reads the current status;
// the transition rule is enforced where payments are mutated.
type TeacherPaymentStatus string

const (
	TeacherPaymentPending  TeacherPaymentStatus = "pending"
	TeacherPaymentApproved TeacherPaymentStatus = "approved"
	TeacherPaymentPaid     TeacherPaymentStatus = "paid"
	TeacherPaymentRejected TeacherPaymentStatus = "rejected"
)

// CanTransitionTo reports whether moving from s to next is a legal forward
// transition.
func (s TeacherPaymentStatus) CanTransitionTo(next TeacherPaymentStatus) bool {
	switch s {
	case TeacherPaymentPending:
		return next == TeacherPaymentApproved || next == TeacherPaymentRejected
	case TeacherPaymentApproved:
		return next == TeacherPaymentPaid
	default:
		return false
	}
}

// TeacherPayment is a payout owed or made to a teacher.
type TeacherPayment struct {
	PaymentID    string               `json:"paymentID"`
	TeacherID    string               `json:"teacherID"`
	Amount       decimal.Decimal      `json:"amount"`
	CurrencyCode string               `json:"currencyCode"`
	Status       TeacherPaymentStatus `json:"status"`
	PaymentDate  time.Time            `json:"paymentDate"`
	HoursWorked  *decimal.Decimal     `json:"hoursWorked,omitempty"`
	HourlyRate   *decimal.Decimal     `json:"hourlyRate,omitempty"`
	Notes        string               `json:"notes,omitempty"`
	AuditFields
}
