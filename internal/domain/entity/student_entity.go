package entity

import (
	"slices"
	"time"
)

// Student is a user account carrying the student profile attributes.
// Optional attributes are nil when the account never set them.
// Password holds a bcrypt hash, never the plain text.
type Student struct {
	ID          int64
	Name        string // display name
	Username    string // account name
	Email       string
	Password    string
	PhoneNumber *string
	StreamID    *int64
	JoiningYear *int
	PassingYear *int
	Enabled     bool
	Roles       []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasRole reports whether the role-set contains role.
func (s *Student) HasRole(role string) bool {
	return slices.Contains(s.Roles, role)
}
