package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// ============================================================================
// Value Objects
// ============================================================================

var circleCodePattern = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]*[a-z0-9])?$`)

// CircleCode represents a validated recharge circle code
type CircleCode struct {
	value string
}

// NewCircleCode normalizes and validates a circle code from a URL or seed file.
// Valid: airtel, vi, bsnl-up-east. Invalid: Air Tel, -jio, jio_
func NewCircleCode(code string) (*CircleCode, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil, WrapValidationError("circle code", fmt.Errorf("code cannot be empty"))
	}

	if len(code) < 2 || len(code) > 32 {
		return nil, WrapValidationError("circle code", fmt.Errorf("code must be 2-32 characters"))
	}

	if !circleCodePattern.MatchString(code) {
		return nil, WrapValidationError("circle code",
			fmt.Errorf("code must be lowercase alphanumeric with hyphens, cannot start or end with hyphen"))
	}

	return &CircleCode{value: code}, nil
}

// String returns the string value of the circle code
func (c *CircleCode) String() string {
	return c.value
}

// Equals checks if two circle codes are equal
func (c *CircleCode) Equals(other *CircleCode) bool {
	if other == nil {
		return false
	}
	return c.value == other.value
}

// ============================================================================

// Role is the access level stamped on a session user
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// ParseRole maps a stored role string to a Role, defaulting to RoleUser
func ParseRole(s string) Role {
	if Role(strings.ToUpper(strings.TrimSpace(s))) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// IsAdmin reports whether the role grants admin access
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}
