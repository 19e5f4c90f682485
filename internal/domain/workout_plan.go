package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanStatus type for the workout plan lifecycle
type PlanStatus string

const (
	PlanActive   PlanStatus = "active"
	PlanArchived PlanStatus = "archived"
)

// PlanExercise is one prescribed exercise inside a workout plan.
type PlanExercise struct {
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Sets       int                `bson:"sets" json:"sets"`
	Reps       int                `bson:"reps" json:"reps"`
	Weight     *float64           `bson:"weight,omitempty" json:"weight,omitempty"`     // kg
	RestTime   *int               `bson:"restTime,omitempty" json:"restTime,omitempty"` // seconds
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Order      int                `bson:"order" json:"order"`
}

// WorkoutPlan is an ordered exercise prescription authored by a trainer.
// A nil MemberID marks the plan as a reusable template.
type WorkoutPlan struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name        string              `bson:"name" json:"name"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	TrainerID   primitive.ObjectID  `bson:"trainerId" json:"trainerId"`
	MemberID    *primitive.ObjectID `bson:"memberId,omitempty" json:"memberId,omitempty"`
	Exercises   []PlanExercise      `bson:"exercises" json:"exercises"`
	Duration    int                 `bson:"duration" json:"duration"` // estimated minutes
	Difficulty  Difficulty          `bson:"difficulty" json:"difficulty"`
	Status      PlanStatus          `bson:"status" json:"status"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// IsTemplate reports whether the plan is unassigned.
func (p *WorkoutPlan) IsTemplate() bool {
	return p.MemberID == nil
}
