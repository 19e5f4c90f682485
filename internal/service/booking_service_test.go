package service

import (
	"alcyxob/gym-app/internal/domain"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newBookingFixture(capacity int) (BookingService, *fakeBookingRepo, *fakeClassRepo, primitive.ObjectID) {
	bookingRepo := newFakeBookingRepo()
	classRepo := newFakeClassRepo()
	memberRepo := newFakeMemberRepo()

	classID, _ := classRepo.Create(context.Background(), &domain.Class{
		Name:     "Morning Yoga",
		Category: "yoga",
		Capacity: capacity,
		Status:   domain.ClassActive,
	})

	svc := NewBookingService(bookingRepo, classRepo, memberRepo)
	return svc, bookingRepo, classRepo, classID
}

func TestBook_AdmitsUpToCapacity(t *testing.T) {
	svc, _, _, classID := newBookingFixture(3)
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		booking, err := svc.Book(context.Background(), primitive.NewObjectID(), classID, date)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingConfirmed, booking.Status)
	}

	_, err := svc.Book(context.Background(), primitive.NewObjectID(), classID, date)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrClassFull)
	assert.Equal(t, "Class is fully booked", err.Error())
}

func TestBook_RejectsDuplicateForSameOccurrence(t *testing.T) {
	svc, _, _, classID := newBookingFixture(10)
	memberID := primitive.NewObjectID()
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	_, err := svc.Book(context.Background(), memberID, classID, date)
	require.NoError(t, err)

	_, err = svc.Book(context.Background(), memberID, classID, date)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateBooking)
	assert.Equal(t, "You already have a booking for this class", err.Error())
}

func TestBook_AllowsSameMemberOnDifferentDates(t *testing.T) {
	svc, _, _, classID := newBookingFixture(10)
	memberID := primitive.NewObjectID()

	_, err := svc.Book(context.Background(), memberID, classID, time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = svc.Book(context.Background(), memberID, classID, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
}

func TestBook_AllowsRebookAfterCancellation(t *testing.T) {
	svc, _, _, classID := newBookingFixture(10)
	memberID := primitive.NewObjectID()
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	booking, err := svc.Book(context.Background(), memberID, classID, date)
	require.NoError(t, err)

	cancelled, err := svc.UpdateStatus(context.Background(), booking.ID, domain.BookingCancelled, "injury")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)
	assert.Equal(t, "injury", cancelled.CancellationReason)

	_, err = svc.Book(context.Background(), memberID, classID, date)
	require.NoError(t, err)
}

func TestBook_UnknownClass(t *testing.T) {
	svc, _, _, _ := newBookingFixture(5)

	_, err := svc.Book(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), time.Now())
	assert.ErrorIs(t, err, ErrClassNotFound)
}

func TestBook_CancelledSeatsDoNotCount(t *testing.T) {
	svc, _, _, classID := newBookingFixture(1)
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	booking, err := svc.Book(context.Background(), primitive.NewObjectID(), classID, date)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), booking.ID, domain.BookingCancelled, "")
	require.NoError(t, err)

	// The freed seat is bookable again.
	_, err = svc.Book(context.Background(), primitive.NewObjectID(), classID, date)
	require.NoError(t, err)
}

func TestUpdateStatus_UnknownBooking(t *testing.T) {
	svc, _, _, _ := newBookingFixture(5)

	_, err := svc.UpdateStatus(context.Background(), primitive.NewObjectID(), domain.BookingCompleted, "")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestDeleteBooking(t *testing.T) {
	svc, _, _, classID := newBookingFixture(5)

	booking, err := svc.Book(context.Background(), primitive.NewObjectID(), classID, time.Now())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), booking.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), booking.ID), ErrBookingNotFound)
}
