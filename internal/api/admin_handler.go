package api

import (
	"alcyxob/gym-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	analyticsService service.AnalyticsService
}

func NewAdminHandler(analyticsService service.AnalyticsService) *AdminHandler {
	return &AdminHandler{analyticsService: analyticsService}
}

// Stats returns the headline dashboard numbers.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.analyticsService.Stats(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Analytics aggregates revenue, attendance, bookings and membership for the
// requested period (week, month or year).
func (h *AdminHandler) Analytics(c *gin.Context) {
	period := c.DefaultQuery("period", "month")
	analytics, err := h.analyticsService.Analytics(c.Request.Context(), period)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch analytics")
		return
	}
	c.JSON(http.StatusOK, analytics)
}
