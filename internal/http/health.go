package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vighnaharta/internal/domain"
)

const serviceName = "vighnaharta"

// HealthResponse is the body of the health endpoint
type HealthResponse struct {
	Status  string             `json:"status"`
	Service string             `json:"service"`
	Store   domain.StoreHealth `json:"store"`
}

// getHealth always answers 200; a failing store only degrades the status
func (s *Server) getHealth(c *gin.Context) {
	store := s.health.Snapshot()

	status := "healthy"
	if !store.Healthy {
		status = "degraded"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:  status,
		Service: serviceName,
		Store:   store,
	})
}
