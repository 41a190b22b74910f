package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vighnaharta/internal/apipaths"
	"github.com/vighnaharta/internal/domain"
)

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	// Health check endpoint (no auth required)
	s.engine.GET(apipaths.Health, s.getHealth)

	// Delegated auth handler plus the session check
	s.engine.Any(apipaths.AuthMount+"/*path", s.authRoute(apipaths.AuthMount))

	api := s.engine.Group("/api")
	{
		// Public data reads
		api.GET("/recharge/circles", s.listCircles)
		api.GET("/recharge/circles/:code", s.getCircle)

		authed := api.Group("")
		authed.Use(s.requireSession())
		{
			authed.GET("/me", s.getCurrentUser)
			authed.GET("/system/stats", requireRole(domain.RoleAdmin), s.getSystemStats)
		}
	}

	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	})
}
