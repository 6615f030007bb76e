package model

import "time"

const (
	RoleEmployee = "employee"
	RoleHR       = "hr"
)

// ValidRole reports whether role is one of the two recognized roles.
// Role is a closed set; values coming from request bodies or token claims
// must pass this check before being trusted.
func ValidRole(role string) bool {
	return role == RoleEmployee || role == RoleHR
}

// User represents a user in the system
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Do not expose password hash in JSON responses
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
