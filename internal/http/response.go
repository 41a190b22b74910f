package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vighnaharta/internal/domain"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// respondDataError logs err and writes the {success:false} body used by the
// data endpoints
func respondDataError(c *gin.Context, err error, msg string, attrs ...any) {
	status := http.StatusInternalServerError
	if domain.IsNotFoundError(err) {
		status = http.StatusNotFound
		slog.DebugContext(c.Request.Context(), msg, append(attrs, "error", err)...)
	} else {
		slog.ErrorContext(c.Request.Context(), msg, append(attrs, "error", err)...)
	}

	c.JSON(status, domain.FailureResponse{
		Success: false,
		Message: domain.PublicMessage(err),
	})
}
