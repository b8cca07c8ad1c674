package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role enumerates the two parties a user can act as on a ticket.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAgent    Role = "AGENT"
)

// ParseRole interprets a caller-supplied role string case-insensitively.
func ParseRole(raw string) (Role, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(RoleCustomer):
		return RoleCustomer, nil
	case string(RoleAgent):
		return RoleAgent, nil
	default:
		return "", fmt.Errorf("invalid role %q: must be 'AGENT' or 'CUSTOMER'", raw)
	}
}

// User is the domain model for customers and agents. Role is fixed at
// signup and never changes.
type User struct {
	ID        string
	Email     string
	Password  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
