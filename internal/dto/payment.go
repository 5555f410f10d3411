package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStudentPaymentRequest is the payload for recording a tuition
// payment.
type CreateStudentPaymentRequest struct {
	StudentID    string          `json:"studentID" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3"`
	Status       string          `json:"status" binding:"required,oneof=completed pending failed"`
	PaymentDate  time.Time       `json:"paymentDate" binding:"required"`
	DueDate      *time.Time      `json:"dueDate,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

// UpdateStudentPaymentRequest updates a tuition payment. Nil fields are
// left unchanged.
type UpdateStudentPaymentRequest struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Status      *string          `json:"status,omitempty" binding:"omitempty,oneof=completed pending failed"`
	PaymentDate *time.Time       `json:"paymentDate,omitempty"`
	DueDate     *time.Time       `json:"dueDate,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

// CreateTeacherPaymentRequest is the payload for queuing a teacher payout.
type CreateTeacherPaymentRequest struct {
	TeacherID    string           `json:"teacherID" binding:"required"`
	Amount       decimal.Decimal  `json:"amount" binding:"required"`
	CurrencyCode string           `json:"currencyCode" binding:"required,len=3"`
	PaymentDate  time.Time        `json:"paymentDate" binding:"required"`
	HoursWorked  *decimal.Decimal `json:"hoursWorked,omitempty"`
	HourlyRate   *decimal.Decimal `json:"hourlyRate,omitempty"`
	Notes        string           `json:"notes,omitempty"`
}

// UpdateTeacherPaymentStatusRequest moves a payout along its approval
// lifecycle. Only forward transitions are accepted.
type UpdateTeacherPaymentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected paid"`
}
