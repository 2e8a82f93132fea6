package model

import "time"

// UserRole represents the role of a user in the system
type UserRole string

const (
	UserRoleMember UserRole = "Team Member" // Default role
	UserRoleAdmin  UserRole = "Admin"       // Full access including user management
)

// User represents a user account
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Hash      *string   `json:"-"` // Never expose password hash
	Name      string    `json:"name"`
	Role      UserRole  `json:"role"`
	CreatedOn time.Time `json:"createdOn"`
	UpdatedOn time.Time `json:"updatedOn"`
}

// IsAdmin returns true if the user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// MemberRef is the compact user projection embedded in events and comments
type MemberRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Ref returns the compact projection of a user
func (u *User) Ref() MemberRef {
	return MemberRef{ID: u.ID, Name: u.Name}
}
