// Package session resolves the signed-in user of a request. The login flows
// themselves are delegated to go-pkgz/auth.
package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/vighnaharta/internal/domain"
)

// ErrNoSession is returned when the request carries no usable session
var ErrNoSession = errors.New("no session")

// Service is the delegated auth capability the HTTP layer depends on
type Service interface {
	// ResolveSession returns the session attached to r, ErrNoSession when
	// there is none, or another error when the lookup itself failed.
	ResolveSession(r *http.Request) (*domain.Session, error)
	// Handler serves login, callback, logout and user endpoints. It expects
	// paths relative to its mount point.
	Handler() http.Handler
	// Middleware attaches the session to the request context when one is
	// present. It never rejects a request.
	Middleware() func(http.Handler) http.Handler
}

type contextKey struct{}

// WithSession returns a copy of ctx carrying s
func WithSession(ctx context.Context, s *domain.Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored by Middleware
func FromContext(ctx context.Context) (*domain.Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*domain.Session)
	return s, ok && s != nil
}
