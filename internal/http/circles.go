package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vighnaharta/internal/domain"
	"github.com/vighnaharta/internal/httputil"
)

// listCircles returns the active recharge circles
func (s *Server) listCircles(c *gin.Context) {
	circles, err := s.circleService.ListActiveCircles(c.Request.Context())
	if err != nil {
		respondDataError(c, err, "failed to fetch recharge circles")
		return
	}
	if circles == nil {
		circles = []domain.Circle{}
	}

	c.JSON(http.StatusOK, domain.CircleListResponse{Success: true, Data: circles})
}

// getCircle returns one active circle by code
func (s *Server) getCircle(c *gin.Context) {
	code, err := httputil.ValidateAndGetCircleCode(c)
	if err != nil {
		respondDataError(c, domain.WrapCircleNotFound(c.Param("code"), err), "invalid circle code")
		return
	}

	circle, err := s.circleService.GetCircleByCode(c.Request.Context(), code)
	if err != nil {
		respondDataError(c, err, "failed to fetch recharge circle", "code", code)
		return
	}

	c.JSON(http.StatusOK, domain.CircleResponse{Success: true, Data: circle})
}
