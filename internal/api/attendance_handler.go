package api

import (
	"alcyxob/gym-app/internal/service"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AttendanceHandler struct {
	attendanceService service.AttendanceService
}

func NewAttendanceHandler(attendanceService service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

type LogAttendanceRequest struct {
	MemberID string `json:"memberId" binding:"required"`
}

// Log appends a check-in stamped with the current time.
func (h *AttendanceHandler) Log(c *gin.Context) {
	var req LogAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	memberID, err := primitive.ObjectIDFromHex(req.MemberID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid memberId format")
		return
	}

	att, err := h.attendanceService.Log(c.Request.Context(), memberID)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to log attendance")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "attendance": att})
}

// List returns a member's check-ins, newest first.
func (h *AttendanceHandler) List(c *gin.Context) {
	rawMemberID := c.Query("memberId")
	if rawMemberID == "" {
		abortWithError(c, http.StatusBadRequest, "memberId query parameter is required")
		return
	}
	memberID, err := primitive.ObjectIDFromHex(rawMemberID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid memberId format")
		return
	}

	records, err := h.attendanceService.ListByMember(c.Request.Context(), memberID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch attendance")
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendance": records})
}
