package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Difficulty type for exercise and plan difficulty levels
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Exercise is a single entry in the shared exercise catalog.
type Exercise struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	MuscleGroups []string           `bson:"muscleGroups" json:"muscleGroups"` // chest, back, legs, arms, shoulders, core
	Equipment    string             `bson:"equipment" json:"equipment"`       // dumbbells, barbell, bodyweight, machine, ...
	Difficulty   Difficulty         `bson:"difficulty" json:"difficulty"`
	Instructions string             `bson:"instructions,omitempty" json:"instructions,omitempty"`
	VideoURL     string             `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	ImageURL     string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
