// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserRole controls what a back-office user may do.
type UserRole string

const (
	// UserRoleStaff may read dashboards and maintain invoices and expenses.
	UserRoleStaff UserRole = "staff"
	// UserRoleOwner may additionally set targets, close and archive quarters.
	UserRoleOwner UserRole = "owner"
)

// User represents a back-office user.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User with the staff role.
func NewUser(email, name, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         UserRoleStaff,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsOwner reports whether the user holds the owner role.
func (u *User) IsOwner() bool {
	return u.Role == UserRoleOwner
}
