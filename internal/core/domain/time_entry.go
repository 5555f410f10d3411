package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeEntry records hours a teacher worked on a given date. TotalAmount
// is derived as HoursWorked x HourlyRate when the entry is created or
// updated; it is never independently settable.
type TimeEntry struct {
	EntryID     string          `json:"entryID"`
	TeacherID   string          `json:"teacherID"`
	Date        time.Time       `json:"date"`
	HoursWorked decimal.Decimal `json:"hoursWorked"`
	HourlyRate  decimal.Decimal `json:"hourlyRate"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Notes       string          `json:"notes,omitempty"`
	AuditFields
}
