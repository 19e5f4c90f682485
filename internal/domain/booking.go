package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingStatus type for the booking lifecycle
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
	BookingNoShow    BookingStatus = "no-show"
)

// Booking reserves one seat in one class occurrence.
//
// Invariants: for a given (classId, date) the count of confirmed/completed
// bookings never exceeds the class capacity, and a member holds at most one
// confirmed booking per (classId, date).
type Booking struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID           primitive.ObjectID `bson:"memberId" json:"memberId"`
	ClassID            primitive.ObjectID `bson:"classId" json:"classId"`
	Date               time.Time          `bson:"date" json:"date"`
	Status             BookingStatus      `bson:"status" json:"status"`
	CancelledAt        *time.Time         `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CancellationReason string             `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CountsTowardCapacity reports whether the booking occupies a seat.
func (b *Booking) CountsTowardCapacity() bool {
	return b.Status == BookingConfirmed || b.Status == BookingCompleted
}
