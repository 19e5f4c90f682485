package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attendance is one check-in event. The log is append-only.
type Attendance struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID primitive.ObjectID `bson:"memberId" json:"memberId"`
	Date     time.Time          `bson:"date" json:"date"`
	Time     string             `bson:"time" json:"time"` // local clock string, e.g. "9:41:05 AM"
}
