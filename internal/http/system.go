package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// getSystemStats returns host and process statistics (admin only)
func (s *Server) getSystemStats(c *gin.Context) {
	slog.DebugContext(c.Request.Context(), "fetching system statistics")

	stats, err := s.systemService.GetSystemStats(c.Request.Context())
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to get system stats", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Failed to retrieve system statistics",
		})
		return
	}

	slog.DebugContext(c.Request.Context(), "system statistics retrieved successfully",
		"cpu", stats.CPU.UsagePercent,
		"memory", stats.Memory.UsagePercent)

	c.JSON(http.StatusOK, stats)
}
