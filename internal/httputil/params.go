package httputil

import (
	"github.com/gin-gonic/gin"

	"github.com/vighnaharta/internal/domain"
)

// ValidateAndGetCircleCode validates and returns the normalized circle code
// from the URL parameter
func ValidateAndGetCircleCode(c *gin.Context) (string, error) {
	code, err := domain.NewCircleCode(c.Param("code"))
	if err != nil {
		return "", err
	}
	return code.String(), nil
}
