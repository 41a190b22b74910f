package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vighnaharta/internal/apipaths"
	"github.com/vighnaharta/internal/config"
	"github.com/vighnaharta/internal/cors"
	"github.com/vighnaharta/internal/domain"
	"github.com/vighnaharta/internal/session"
)

const (
	maxBodySize     = 1 << 20          // 1MB max request body
	readTimeout     = 15 * time.Second // 15s for reading request
	writeTimeout    = 30 * time.Second // outbound store calls time out well before this
	idleTimeout     = 120 * time.Second
	shutdownTimeout = 10 * time.Second

	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// HealthReporter exposes the last store health probe
type HealthReporter interface {
	Snapshot() domain.StoreHealth
}

// Dependencies are the collaborators the server is wired with
type Dependencies struct {
	Policy        *cors.Policy
	Sessions      session.Service
	CircleService domain.CircleService
	SystemService domain.SystemService
	Health        HealthReporter
}

// Server wraps the HTTP server
type Server struct {
	config        *config.Config
	policy        *cors.Policy
	sessions      session.Service
	circleService domain.CircleService
	systemService domain.SystemService
	health        HealthReporter
	engine        *gin.Engine
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, deps Dependencies) *Server {
	// Set Gin mode based on environment
	switch cfg.Environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()

	// Middleware - order matters
	engine.Use(gin.Recovery())
	engine.Use(requestIDMiddleware())
	engine.Use(securityHeadersMiddleware())
	engine.Use(corsMiddleware(deps.Policy))
	engine.Use(cacheControlMiddleware())
	engine.Use(loggerMiddleware())
	engine.Use(jsonBodyLimitMiddleware(maxBodySize))

	server := &Server{
		config:        cfg,
		policy:        deps.Policy,
		sessions:      deps.Sessions,
		circleService: deps.CircleService,
		systemService: deps.SystemService,
		health:        deps.Health,
		engine:        engine,
	}

	server.setupRoutes()

	return server
}

// Handler returns the root handler, used by tests and Run
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is canceled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	addr := s.config.ServerAddress
	if addr == "" {
		addr = ":8080"
	}

	// Configure server with timeouts
	server := &http.Server{
		Addr:           addr,
		Handler:        s.engine,
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,
		IdleTimeout:    idleTimeout,
		MaxHeaderBytes: 1 << 20, // 1MB max header size
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "address", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requestIDMiddleware reuses the caller's X-Request-ID or generates one
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// securityHeadersMiddleware adds security-related HTTP headers
func securityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Prevent MIME type sniffing
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		// Prevent clickjacking
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Writer.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		// HSTS (only if using HTTPS)
		if c.Request.TLS != nil {
			c.Writer.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}

// corsMiddleware applies the CORS policy to every route outside the auth
// mount, which authRoute decorates itself
func corsMiddleware(policy *cors.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, apipaths.AuthMount+"/") {
			c.Next()
			return
		}

		if c.Request.Method == http.MethodOptions {
			policy.Preflight(c.Writer)
			c.Abort()
			return
		}

		policy.Apply(c.Writer.Header())
		c.Next()
	}
}

// cacheControlMiddleware disables caching of API responses
func cacheControlMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.Writer.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			c.Writer.Header().Set("Pragma", "no-cache")
			c.Writer.Header().Set("Expires", "0")
		}
		c.Next()
	}
}

// jsonBodyLimitMiddleware limits the size of JSON request bodies to prevent DoS
func jsonBodyLimitMiddleware(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only apply to JSON requests
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodDelete && c.Request.Method != http.MethodOptions {
			contentType := c.GetHeader("Content-Type")
			if strings.Contains(contentType, "application/json") {
				if c.Request.ContentLength > maxBytes {
					c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, ErrorResponse{
						Error: "Request body too large",
					})
					return
				}
				c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
			}
		}
		c.Next()
	}
}

// loggerMiddleware logs HTTP requests once they complete
func loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", c.ClientIP(),
			"request_id", c.GetString(requestIDKey),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			slog.WarnContext(c.Request.Context(), "HTTP request", attrs...)
			return
		}
		slog.InfoContext(c.Request.Context(), "HTTP request", attrs...)
	}
}
