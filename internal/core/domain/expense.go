package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseStatus tracks the approval lifecycle of a submitted expense.
type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "pending"
	ExpenseApproved ExpenseStatus = "approved"
	ExpenseRejected ExpenseStatus = "rejected"
)

// Expense is a general operating expense submitted by a staff member.
// Amount must be strictly positive. Category is free-form and grouped
// case-sensitively in reports.
type Expense struct {
	ExpenseID    string          `json:"expenseID"`
	SubmittedBy  string          `json:"submittedBy"` // UserID Reference
	Category     string          `json:"category"`
	Description  string          `json:"description,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	Date         time.Time       `json:"date"`
	Status       ExpenseStatus   `json:"status"`
	AuditFields
}
