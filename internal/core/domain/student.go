package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Student holds a tuition student record. TotalPaid, LastPaymentDate and
// CurrentBalance are denormalized payment-summary fields owned by the
// aggregation engine: they are recomputed after every payment mutation
// (see StudentPaymentService) and must never be set directly by callers.
type Student struct {
	StudentID       string           `json:"studentID"`
	Name            string           `json:"name"`
	TeacherID       string           `json:"teacherID"`
	Active          bool             `json:"active"`
	TotalPaid       decimal.Decimal  `json:"totalPaid"`
	LastPaymentDate *time.Time       `json:"lastPaymentDate,omitempty"`
	CurrentBalance  decimal.Decimal  `json:"currentBalance"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
