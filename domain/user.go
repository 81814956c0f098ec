package domain

import (
	"strings"
	"time"
)

// User is a registered identity. The username is the only credential:
// a unique, case-sensitive token chosen at registration.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	FullName  string    `json:"fullName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// DisplayName prefers the full name over the username.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// UserInput carries the fields accepted at registration.
type UserInput struct {
	Username string
	Email    string
	FullName string
}

// Normalize trims surrounding whitespace from every field.
func (in *UserInput) Normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
}
