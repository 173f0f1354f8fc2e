package model

import "time"

// Roles a user can hold.
const (
	RoleResident = "resident"
	RoleAdmin    = "admin"
)

type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	HouseholdID *string    `json:"household_id,omitempty"`
	SuspendedAt *time.Time `json:"suspended_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsSuspended returns true if the user account is currently suspended.
func (u *User) IsSuspended() bool {
	return u.SuspendedAt != nil
}

// IsAdmin reports whether the user may moderate users, vendors and costs.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
