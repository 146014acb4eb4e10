package model

import (
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of account kinds.
type Role string

const (
	RoleStudent Role = "student"
	RoleStaff   Role = "staff"
)

// Capability names an action gated by role.
type Capability int

const (
	CapSubmitJobs Capability = iota + 1
	CapManageQueue
	CapReadAnyDocument
)

// ParseRole converts a form value into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, nil
	case RoleStaff:
		return RoleStaff, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Can reports whether the role holds the capability.
func (r Role) Can(c Capability) bool {
	switch r {
	case RoleStudent:
		return c == CapSubmitJobs
	case RoleStaff:
		return c == CapManageQueue || c == CapReadAnyDocument
	}
	return false
}

// Dashboard is the landing path for the role.
func (r Role) Dashboard() string {
	if r == RoleStaff {
		return "/staff"
	}
	return "/student"
}

// User represents an account in the system
type User struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"` // Do not expose password hash in JSON responses
	Role            Role      `json:"role"`
	InstitutionalID *string   `json:"institutional_id,omitempty"` // students only
	Batch           *string   `json:"batch,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// SignupRequest carries the signup form fields
type SignupRequest struct {
	Name            string
	Email           string
	Password        string
	Role            string
	InstitutionalID string
	Batch           string
}

// Identity is the authenticated caller resolved from the session token.
type Identity struct {
	UserID int
	Name   string
	Role   Role
}
