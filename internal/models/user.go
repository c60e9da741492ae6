package models

import (
	"time"
)

// Role represents user roles in the console
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Actions checked by HasPermission
const (
	ActionViewRecords   = "view_records"
	ActionEditRecords   = "edit_records"
	ActionDeleteRecords = "delete_records"
	ActionRefreshAlerts = "refresh_alerts"
)

// User is an entry of the static credential table
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	Name         string `json:"name"`
}

// Session is the logged-in user descriptor persisted by the console
type Session struct {
	ID         string    `json:"session_id"`
	Username   string    `json:"username"`
	Role       Role      `json:"role"`
	Name       string    `json:"name"`
	Token      string    `json:"token,omitempty"`
	LoggedInAt time.Time `json:"logged_in_at"`
}

// IsAdmin reports whether the session belongs to an administrator
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	Token   string  `json:"token"`
	Session Session `json:"session"`
}

// Claims represents JWT claims
type Claims struct {
	SessionID string `json:"session_id"`
	Username  string `json:"username"`
	Role      Role   `json:"role"`
	Exp       int64  `json:"exp"`
}

// IsValidRole checks if a role is valid
func IsValidRole(role Role) bool {
	switch role {
	case RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// HasPermission checks if a user has permission for a specific action
func (u *User) HasPermission(action string) bool {
	switch u.Role {
	case RoleAdmin:
		return true
	case RoleUser:
		return action == ActionViewRecords || action == ActionEditRecords ||
			action == ActionRefreshAlerts
	default:
		return false
	}
}
