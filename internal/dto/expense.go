package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest is the payload for submitting an expense.
type CreateExpenseRequest struct {
	Category     string          `json:"category" binding:"required"`
	Description  string          `json:"description,omitempty"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3"`
	Date         time.Time       `json:"date" binding:"required"`
}

// UpdateExpenseRequest updates a pending expense. Nil fields are left
// unchanged.
type UpdateExpenseRequest struct {
	Category    *string          `json:"category,omitempty"`
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
}

// ReviewExpenseRequest approves or rejects a submitted expense.
type ReviewExpenseRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}
