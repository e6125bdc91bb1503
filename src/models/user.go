package models

import (
	"time"
)

// Role is the access level of a user account
type Role string

const (
	// RoleAdmin grants access to the administration panel
	RoleAdmin Role = "admin"
	// RoleUser is a regular desktop session account
	RoleUser Role = "user"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User represents a desktop account
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // never expose
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsProtected returns true for the account that can never be deleted
func (u *User) IsProtected() bool {
	return u.Username == ProtectedUsername
}
