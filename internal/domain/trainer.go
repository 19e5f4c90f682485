package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultSpecialization is used when a trainer record is materialized
// for a trainer user that never provided one.
const DefaultSpecialization = "General Fitness"

// Trainer holds the staff profile of a User with role "trainer".
type Trainer struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	Specialization string             `bson:"specialization" json:"specialization"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
