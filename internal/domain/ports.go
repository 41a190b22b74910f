package domain

import (
	"context"
	"time"

	"github.com/vighnaharta/internal/system"
)

// ============================================================================
// Primary Ports (Application Use Cases)
// ============================================================================

// CircleService defines the primary port for recharge circle reads
type CircleService interface {
	// ListActiveCircles never returns a nil slice on success
	ListActiveCircles(ctx context.Context) ([]Circle, error)
	GetCircleByCode(ctx context.Context, code string) (*Circle, error)
}

// SystemService defines the primary port for host monitoring
type SystemService interface {
	GetSystemStats(ctx context.Context) (*system.SystemStats, error)
}

// ============================================================================
// Secondary Ports (Infrastructure)
// ============================================================================

// CircleRepository is implemented by every circle store backend
type CircleRepository interface {
	// ListActiveCircles returns active circles ordered by sort_order, then name
	ListActiveCircles(ctx context.Context) ([]Circle, error)
	// GetCircleByCode returns ErrCircleNotFound when no active circle has the code
	GetCircleByCode(ctx context.Context, code string) (*Circle, error)
	Ping(ctx context.Context) error
	Close() error
}

// ============================================================================
// Request/Response Types
// ============================================================================

// CircleListResponse is the body of a successful circle list read
type CircleListResponse struct {
	Success bool     `json:"success"`
	Data    []Circle `json:"data"`
}

// CircleResponse is the body of a successful single circle read
type CircleResponse struct {
	Success bool    `json:"success"`
	Data    *Circle `json:"data"`
}

// FailureResponse is returned by the data endpoints when a read fails
type FailureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AuthCheckResponse is the body of the session check endpoint
type AuthCheckResponse struct {
	IsAuthenticated bool        `json:"isAuthenticated"`
	User            *UserFields `json:"user,omitempty"`
}

// StoreHealth is the last observed state of the circle store
type StoreHealth struct {
	Driver    string     `json:"driver"`
	Healthy   bool       `json:"healthy"`
	CheckedAt *time.Time `json:"checked_at,omitempty"`
	Error     string     `json:"error,omitempty"`
}
