package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTimeEntryRequest is the payload for logging worked hours. The
// entry's total amount is derived server-side from hours x rate and is
// not accepted from the client.
type CreateTimeEntryRequest struct {
	TeacherID   string           `json:"teacherID,omitempty"` // defaults to the caller for teachers
	Date        time.Time        `json:"date" binding:"required"`
	HoursWorked decimal.Decimal  `json:"hoursWorked" binding:"required"`
	HourlyRate  *decimal.Decimal `json:"hourlyRate,omitempty"` // defaults to the teacher's rate
	Notes       string           `json:"notes,omitempty"`
}

// UpdateTimeEntryRequest updates a time entry. Nil fields are left
// unchanged; the total amount is re-derived after any change.
type UpdateTimeEntryRequest struct {
	Date        *time.Time       `json:"date,omitempty"`
	HoursWorked *decimal.Decimal `json:"hoursWorked,omitempty"`
	HourlyRate  *decimal.Decimal `json:"hourlyRate,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}
