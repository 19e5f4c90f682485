package api

import (
	"alcyxob/gym-app/internal/domain"
	"alcyxob/gym-app/internal/repository"
	"alcyxob/gym-app/internal/service"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubBookingService returns canned results so handler status mapping can be
// exercised without a database.
type stubBookingService struct {
	bookErr error
	booking *domain.Booking
}

func (s *stubBookingService) Book(_ context.Context, memberID, classID primitive.ObjectID, date time.Time) (*domain.Booking, error) {
	if s.bookErr != nil {
		return nil, s.bookErr
	}
	if s.booking != nil {
		return s.booking, nil
	}
	return &domain.Booking{
		ID:       primitive.NewObjectID(),
		MemberID: memberID,
		ClassID:  classID,
		Date:     date,
		Status:   domain.BookingConfirmed,
	}, nil
}

func (s *stubBookingService) Get(_ context.Context, _ primitive.ObjectID) (*service.BookingDetail, error) {
	return nil, service.ErrBookingNotFound
}

func (s *stubBookingService) List(_ context.Context, _ repository.BookingFilter) ([]service.BookingDetail, error) {
	return nil, nil
}

func (s *stubBookingService) UpdateStatus(_ context.Context, _ primitive.ObjectID, _ domain.BookingStatus, _ string) (*domain.Booking, error) {
	return nil, service.ErrBookingNotFound
}

func (s *stubBookingService) Delete(_ context.Context, _ primitive.ObjectID) error {
	return service.ErrBookingNotFound
}

func newBookingRouter(svc service.BookingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewBookingHandler(svc)
	router.POST("/bookings", handler.Create)
	router.GET("/bookings/:id", handler.Get)
	return router
}

func postBooking(t *testing.T, router *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	return rec
}

func TestBookingCreate_Success(t *testing.T) {
	router := newBookingRouter(&stubBookingService{})

	rec := postBooking(t, router, gin.H{
		"memberId": primitive.NewObjectID().Hex(),
		"classId":  primitive.NewObjectID().Hex(),
		"date":     "2026-09-01",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	var body struct {
		Success bool            `json:"success"`
		Booking BookingResponse `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, domain.BookingConfirmed, body.Booking.Status)
	assert.NotEmpty(t, body.Booking.ID)
}

func TestBookingCreate_FullClass(t *testing.T) {
	router := newBookingRouter(&stubBookingService{bookErr: service.ErrClassFull})

	rec := postBooking(t, router, gin.H{
		"memberId": primitive.NewObjectID().Hex(),
		"classId":  primitive.NewObjectID().Hex(),
		"date":     "2026-09-01",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Class is fully booked")
}

func TestBookingCreate_DuplicateBooking(t *testing.T) {
	router := newBookingRouter(&stubBookingService{bookErr: service.ErrDuplicateBooking})

	rec := postBooking(t, router, gin.H{
		"memberId": primitive.NewObjectID().Hex(),
		"classId":  primitive.NewObjectID().Hex(),
		"date":     "2026-09-01",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "You already have a booking for this class")
}

func TestBookingCreate_UnknownClass(t *testing.T) {
	router := newBookingRouter(&stubBookingService{bookErr: service.ErrClassNotFound})

	rec := postBooking(t, router, gin.H{
		"memberId": primitive.NewObjectID().Hex(),
		"classId":  primitive.NewObjectID().Hex(),
		"date":     "2026-09-01",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookingCreate_BadObjectID(t *testing.T) {
	router := newBookingRouter(&stubBookingService{})

	rec := postBooking(t, router, gin.H{
		"memberId": "not-an-id",
		"classId":  primitive.NewObjectID().Hex(),
		"date":     "2026-09-01",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid memberId format")
}

func TestBookingCreate_MissingFields(t *testing.T) {
	router := newBookingRouter(&stubBookingService{})

	rec := postBooking(t, router, gin.H{"memberId": primitive.NewObjectID().Hex()})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Validation error")
}

func TestBookingGet_BadParamFormat(t *testing.T) {
	router := newBookingRouter(&stubBookingService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/bookings/%s", "zzz"), nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid id format")
}
