package domain

import "time"

// Circle is a recharge circle (telecom operator region) offered on the site
type Circle struct {
	ID        string    `json:"id" db:"id" yaml:"id"`
	Name      string    `json:"name" db:"name" yaml:"name"`
	Code      string    `json:"code" db:"code" yaml:"code"`
	IsActive  bool      `json:"is_active" db:"is_active" yaml:"is_active"`
	SortOrder int       `json:"sort_order" db:"sort_order" yaml:"sort_order"`
	CreatedAt time.Time `json:"created_at" db:"created_at" yaml:"created_at"`
}

// UserFields is the user part of a session as exposed to clients
type UserFields struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Picture string `json:"picture,omitempty"`
	Role    Role   `json:"role"`
}

// Session is the authenticated identity attached to a request
type Session struct {
	User UserFields `json:"user"`
}
