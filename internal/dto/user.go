package dto

import (
	"time"

	"github.com/hammamsawalma/edusystem/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateUserRequest is the payload for creating a staff account
// (typically an admin creating a teacher).
type CreateUserRequest struct {
	Name       string           `json:"name" binding:"required"`
	Email      string           `json:"email" binding:"required,email"`
	Password   string           `json:"password" binding:"required,min=8"`
	Role       string           `json:"role" binding:"required,oneof=admin teacher"`
	HourlyRate *decimal.Decimal `json:"hourlyRate,omitempty"`
}

// UpdateUserRequest is the payload for updating a staff account. Nil
// fields are left unchanged.
type UpdateUserRequest struct {
	Name       *string          `json:"name,omitempty"`
	HourlyRate *decimal.Decimal `json:"hourlyRate,omitempty"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	UserID     string           `json:"userID"`
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Role       string           `json:"role"`
	HourlyRate *decimal.Decimal `json:"hourlyRate,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// ListUsersResponse wraps a page of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToUserResponse converts a domain user to its public view.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:     u.UserID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       string(u.Role),
		HourlyRate: u.HourlyRate,
		CreatedAt:  u.CreatedAt,
	}
}

// ToListUsersResponse converts a slice of domain users.
func ToListUsersResponse(users []domain.User) ListUsersResponse {
	resp := ListUsersResponse{Users: make([]UserResponse, len(users))}
	for i := range users {
		resp.Users[i] = ToUserResponse(&users[i])
	}
	return resp
}
