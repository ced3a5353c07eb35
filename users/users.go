package users

import (
	"time"
)

// RoleType represents a role claim on the cached user
type RoleType string

const (
	RoleAdmin          RoleType = "ADMIN"
	RoleDepartmentHead RoleType = "DEPARTMENT_HEAD"
	RoleTeacher        RoleType = "TEACHER"
	RoleUser           RoleType = "USER"
)

// User is the backend-owned account record. The client holds a read-only
// cached copy inside the session; it never mutates these fields itself.
type User struct {
	ID            string     `json:"id,omitempty"`            // Unique identifier for the user
	Email         string     `json:"email,omitempty"`         // User's email address
	FirstName     string     `json:"firstName,omitempty"`     // First name of the user
	LastName      string     `json:"lastName,omitempty"`      // Last name of the user
	Roles         []RoleType `json:"roles,omitempty"`         // Role claims (ADMIN, DEPARTMENT_HEAD, ...)
	IsActive      bool       `json:"isActive,omitempty"`      // Whether the account is active
	EmailVerified bool       `json:"emailVerified,omitempty"` // Whether the email address has been verified
	CreatedAt     time.Time  `json:"createdAt,omitempty"`
	UpdatedAt     time.Time  `json:"updatedAt,omitempty"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty"`
}

// HasRole checks whether the user carries a specific role claim
func (u *User) HasRole(role RoleType) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin returns true if the user has the ADMIN role
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
