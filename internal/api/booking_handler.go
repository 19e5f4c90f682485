package api

import (
	"alcyxob/gym-app/internal/domain"
	"alcyxob/gym-app/internal/repository"
	"alcyxob/gym-app/internal/service"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingHandler struct {
	bookingService service.BookingService
}

func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

type CreateBookingRequest struct {
	MemberID string `json:"memberId" binding:"required"`
	ClassID  string `json:"classId" binding:"required"`
	Date     string `json:"date" binding:"required"`
}

type UpdateBookingRequest struct {
	Status             domain.BookingStatus `json:"status" binding:"required,oneof=confirmed cancelled completed no-show"`
	CancellationReason string               `json:"cancellationReason,omitempty"`
}

type BookingResponse struct {
	ID                 string               `json:"id"`
	MemberID           string               `json:"memberId"`
	ClassID            string               `json:"classId"`
	Member             *MemberResponse      `json:"member,omitempty"`
	Class              *ClassResponse       `json:"class,omitempty"`
	Date               time.Time            `json:"date"`
	Status             domain.BookingStatus `json:"status"`
	CancelledAt        *time.Time           `json:"cancelledAt,omitempty"`
	CancellationReason string               `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time            `json:"createdAt"`
}

func MapBookingToResponse(d *service.BookingDetail) BookingResponse {
	resp := BookingResponse{
		ID:                 d.Booking.ID.Hex(),
		MemberID:           d.Booking.MemberID.Hex(),
		ClassID:            d.Booking.ClassID.Hex(),
		Date:               d.Booking.Date,
		Status:             d.Booking.Status,
		CancelledAt:        d.Booking.CancelledAt,
		CancellationReason: d.Booking.CancellationReason,
		CreatedAt:          d.Booking.CreatedAt,
	}
	if d.Member != nil {
		m := MapMemberToResponse(d.Member)
		resp.Member = &m
	}
	if d.Class != nil {
		cr := MapClassToResponse(&service.ClassDetail{Class: *d.Class})
		resp.Class = &cr
	}
	return resp
}

// Create books a member into a class occurrence, enforcing capacity and the
// one-confirmed-booking rule.
func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	memberID, err := primitive.ObjectIDFromHex(req.MemberID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid memberId format")
		return
	}
	classID, err := primitive.ObjectIDFromHex(req.ClassID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid classId format")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid date")
		return
	}

	booking, err := h.bookingService.Book(c.Request.Context(), memberID, classID, date)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClassNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrClassFull), errors.Is(err, service.ErrDuplicateBooking):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create booking")
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "booking": MapBookingToResponse(&service.BookingDetail{Booking: *booking})})
}

func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	detail, err := h.bookingService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch booking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": MapBookingToResponse(detail)})
}

func (h *BookingHandler) List(c *gin.Context) {
	memberID, err := optionalObjectIDQuery(c, "memberId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	classID, err := optionalObjectIDQuery(c, "classId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	date, err := optionalDateQuery(c, "date")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	filter := repository.BookingFilter{
		MemberID: memberID,
		ClassID:  classID,
		Date:     date,
		Status:   domain.BookingStatus(c.Query("status")),
	}
	details, err := h.bookingService.List(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}
	bookings := make([]BookingResponse, 0, len(details))
	for i := range details {
		bookings = append(bookings, MapBookingToResponse(&details[i]))
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (h *BookingHandler) Update(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	booking, err := h.bookingService.UpdateStatus(c.Request.Context(), id, req.Status, req.CancellationReason)
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to update booking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": MapBookingToResponse(&service.BookingDetail{Booking: *booking})})
}

func (h *BookingHandler) Delete(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.bookingService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to delete booking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
