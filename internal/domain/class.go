package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClassStatus type for the class lifecycle
type ClassStatus string

const (
	ClassActive    ClassStatus = "active"
	ClassInactive  ClassStatus = "inactive"
	ClassCancelled ClassStatus = "cancelled"
)

// ScheduleSlot is one recurring occurrence of a class.
type ScheduleSlot struct {
	DayOfWeek int    `bson:"dayOfWeek" json:"dayOfWeek"` // 0 (Sunday) - 6 (Saturday)
	StartTime string `bson:"startTime" json:"startTime"` // HH:MM
	EndTime   string `bson:"endTime" json:"endTime"`
	Duration  int    `bson:"duration" json:"duration"` // minutes
}

// Class represents a bookable group class (Yoga, Zumba, CrossFit, ...).
type Class struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name         string              `bson:"name" json:"name"`
	Description  string              `bson:"description,omitempty" json:"description,omitempty"`
	InstructorID *primitive.ObjectID `bson:"instructorId,omitempty" json:"instructorId,omitempty"` // Trainer reference
	Schedule     []ScheduleSlot      `bson:"schedule" json:"schedule"`
	Capacity     int                 `bson:"capacity" json:"capacity"`
	Price        float64             `bson:"price" json:"price"`
	Category     string              `bson:"category" json:"category"`
	Status       ClassStatus         `bson:"status" json:"status"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}
