package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SetRecord is one performed set inside a workout session.
type SetRecord struct {
	Reps      int      `bson:"reps" json:"reps"`
	Weight    *float64 `bson:"weight,omitempty" json:"weight,omitempty"`
	Completed bool     `bson:"completed" json:"completed"`
	Notes     string   `bson:"notes,omitempty" json:"notes,omitempty"`
}

// SessionExercise records the sets performed for one exercise.
type SessionExercise struct {
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Sets       []SetRecord        `bson:"sets" json:"sets"`
	Completed  bool               `bson:"completed" json:"completed"`
}

// WorkoutSession is a member's logged training session, optionally following
// a WorkoutPlan. Duration is derived in whole minutes from StartTime when the
// session is completed.
type WorkoutSession struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	MemberID      primitive.ObjectID  `bson:"memberId" json:"memberId"`
	WorkoutPlanID *primitive.ObjectID `bson:"workoutPlanId,omitempty" json:"workoutPlanId,omitempty"`
	Date          time.Time           `bson:"date" json:"date"`
	StartTime     time.Time           `bson:"startTime" json:"startTime"`
	EndTime       *time.Time          `bson:"endTime,omitempty" json:"endTime,omitempty"`
	Duration      *int                `bson:"duration,omitempty" json:"duration,omitempty"` // minutes
	Exercises     []SessionExercise   `bson:"exercises" json:"exercises"`
	Notes         string              `bson:"notes,omitempty" json:"notes,omitempty"`
	Completed     bool                `bson:"completed" json:"completed"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt" json:"updatedAt"`
}
