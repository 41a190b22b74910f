package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vighnaharta/internal/domain"
	"github.com/vighnaharta/internal/session"
)

// Auth endpoints, all under /api/auth and all CORS-decorated by authRoute:
//   - GET  /api/auth/check                  - session check (served here)
//   - GET  /api/auth/{google,github}/login  - start OAuth flow
//   - GET  /api/auth/{google,github}/callback
//   - POST /api/auth/local/login            - admin credentials login
//   - GET  /api/auth/logout
//   - GET  /api/auth/user, /api/auth/list

const sessionKey = "session"

// authRoute mounts the delegated auth handler at prefix. Preflight requests
// are answered here and never reach the delegate. Everything else is handed
// over with the mount prefix stripped, and the response headers are
// overwritten with the CORS set as they are committed.
func (s *Server) authRoute(prefix string) gin.HandlerFunc {
	delegate := s.sessions.Handler()

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			s.policy.Preflight(c.Writer)
			c.Abort()
			return
		}

		original := c.Writer
		writer := newCORSWriter(original, s.policy)
		c.Writer = writer
		defer func() { c.Writer = original }()

		if c.Param("path") == "/check" && c.Request.Method == http.MethodGet {
			s.checkSession(c)
		} else {
			// go-pkgz/auth expects paths relative to where it's mounted
			originalPath := c.Request.URL.Path
			c.Request.URL.Path = strings.TrimPrefix(originalPath, prefix)
			delegate.ServeHTTP(writer, c.Request)
			c.Request.URL.Path = originalPath
		}

		// a delegate that wrote nothing still gets the header set
		if !writer.Written() {
			s.policy.Apply(writer.Header())
		}
	}
}

// checkSession reports whether the request carries a valid session. Lookup
// failures are indistinguishable from being signed out.
func (s *Server) checkSession(c *gin.Context) {
	sess, err := s.sessions.ResolveSession(c.Request)
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			slog.DebugContext(c.Request.Context(), "session lookup failed", "error", err)
		}
		c.JSON(http.StatusOK, domain.AuthCheckResponse{IsAuthenticated: false})
		return
	}

	user := sess.User
	c.JSON(http.StatusOK, domain.AuthCheckResponse{IsAuthenticated: true, User: &user})
}

// requireSession rejects requests without a session with a JSON 401
func (s *Server) requireSession() gin.HandlerFunc {
	middleware := s.sessions.Middleware()

	return func(c *gin.Context) {
		var sess *domain.Session
		handler := middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			c.Request = r
			sess, _ = session.FromContext(r.Context())
		}))
		handler.ServeHTTP(c.Writer, c.Request)

		if sess == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "Not authenticated",
				Details: "Please sign in to continue",
			})
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// requireRole must run after requireSession
func requireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := getSessionFromContext(c)
		if !ok || sess.User.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "Insufficient permissions"})
			return
		}
		c.Next()
	}
}

// getSessionFromContext extracts the session stored by requireSession
func getSessionFromContext(c *gin.Context) (*domain.Session, bool) {
	if v, exists := c.Get(sessionKey); exists {
		if sess, ok := v.(*domain.Session); ok {
			return sess, true
		}
	}
	return nil, false
}

// getCurrentUser returns the authenticated user info
func (s *Server) getCurrentUser(c *gin.Context) {
	sess, ok := getSessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not authenticated"})
		return
	}
	c.JSON(http.StatusOK, sess.User)
}
