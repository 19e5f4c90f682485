package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Measurements holds optional body measurements in centimeters.
type Measurements struct {
	Chest  *float64 `bson:"chest,omitempty" json:"chest,omitempty"`
	Waist  *float64 `bson:"waist,omitempty" json:"waist,omitempty"`
	Hips   *float64 `bson:"hips,omitempty" json:"hips,omitempty"`
	Arms   *float64 `bson:"arms,omitempty" json:"arms,omitempty"`
	Thighs *float64 `bson:"thighs,omitempty" json:"thighs,omitempty"`
}

// Progress is a point-in-time body composition snapshot for a member.
// Photos holds object-storage keys or URLs; the files themselves live in S3.
type Progress struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID     primitive.ObjectID `bson:"memberId" json:"memberId"`
	Date         time.Time          `bson:"date" json:"date"`
	Weight       *float64           `bson:"weight,omitempty" json:"weight,omitempty"`         // kg
	BodyFat      *float64           `bson:"bodyFat,omitempty" json:"bodyFat,omitempty"`       // percent
	MuscleMass   *float64           `bson:"muscleMass,omitempty" json:"muscleMass,omitempty"` // kg
	Measurements *Measurements      `bson:"measurements,omitempty" json:"measurements,omitempty"`
	Photos       []string           `bson:"photos,omitempty" json:"photos,omitempty"`
	Notes        string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
