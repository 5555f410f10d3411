package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuthProvider identifies how a user authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User represents a back-office account. Teachers are users with
// RoleTeacher; their HourlyRate is the default rate for new time entries.
type User struct {
	UserID         string           `json:"userID"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	PasswordHash   string           `json:"-"`
	Role           Role             `json:"role"`
	AuthProvider   AuthProvider     `json:"authProvider"`
	ProviderUserID string           `json:"-"`
	EmailVerified  bool             `json:"emailVerified"`
	HourlyRate     *decimal.Decimal `json:"hourlyRate,omitempty"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}
