package service

import (
	"alcyxob/gym-app/internal/domain"
	"alcyxob/gym-app/internal/repository"
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrExerciseNotFound = errors.New("exercise not found")
)

// SeedResult reports the outcome of a catalog seeding attempt.
type SeedResult struct {
	Seeded    bool
	Count     int64
	Exercises []domain.Exercise
}

type ExerciseService interface {
	Create(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	List(ctx context.Context, filter repository.ExerciseFilter) ([]domain.Exercise, error)
	// Seed inserts the default catalog, but only into an empty collection.
	Seed(ctx context.Context) (*SeedResult, error)
}

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{exerciseRepo: exerciseRepo}
}

func (s *exerciseService) Create(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error) {
	id, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	exercise.ID = id
	return exercise, nil
}

func (s *exerciseService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) List(ctx context.Context, filter repository.ExerciseFilter) ([]domain.Exercise, error) {
	return s.exerciseRepo.List(ctx, filter)
}

func (s *exerciseService) Seed(ctx context.Context) (*SeedResult, error) {
	existing, err := s.exerciseRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return &SeedResult{Seeded: false, Count: existing}, nil
	}

	inserted, err := s.exerciseRepo.InsertMany(ctx, defaultExercises())
	if err != nil {
		return nil, err
	}
	log.WithField("count", len(inserted)).Info("seeded exercise catalog")
	return &SeedResult{Seeded: true, Count: int64(len(inserted)), Exercises: inserted}, nil
}

// defaultExercises is the starter catalog inserted on first seed.
func defaultExercises() []domain.Exercise {
	return []domain.Exercise{
		{
			Name:         "Bench Press",
			Description:  "Upper body compound exercise targeting chest, shoulders, and triceps",
			MuscleGroups: []string{"chest", "shoulders", "triceps"},
			Equipment:    "barbell",
			Difficulty:   domain.DifficultyIntermediate,
		},
		{
			Name:         "Squat",
			Description:  "Lower body compound exercise targeting quadriceps, glutes, and hamstrings",
			MuscleGroups: []string{"legs", "glutes"},
			Equipment:    "barbell",
			Difficulty:   domain.DifficultyIntermediate,
		},
		{
			Name:         "Deadlift",
			Description:  "Full body compound exercise targeting back, glutes, and hamstrings",
			MuscleGroups: []string{"back", "legs", "glutes"},
			Equipment:    "barbell",
			Difficulty:   domain.DifficultyAdvanced,
		},
		{
			Name:         "Pull-ups",
			Description:  "Upper body exercise targeting back and biceps",
			MuscleGroups: []string{"back", "biceps"},
			Equipment:    "bodyweight",
			Difficulty:   domain.DifficultyIntermediate,
		},
		{
			Name:         "Push-ups",
			Description:  "Upper body exercise targeting chest, shoulders, and triceps",
			MuscleGroups: []string{"chest", "shoulders", "triceps"},
			Equipment:    "bodyweight",
			Difficulty:   domain.DifficultyBeginner,
		},
		{
			Name:         "Dumbbell Curls",
			Description:  "Isolation exercise targeting biceps",
			MuscleGroups: []string{"biceps", "arms"},
			Equipment:    "dumbbells",
			Difficulty:   domain.DifficultyBeginner,
		},
		{
			Name:         "Shoulder Press",
			Description:  "Upper body exercise targeting shoulders and triceps",
			MuscleGroups: []string{"shoulders", "triceps"},
			Equipment:    "dumbbells",
			Difficulty:   domain.DifficultyIntermediate,
		},
		{
			Name:         "Lunges",
			Description:  "Lower body exercise targeting quadriceps and glutes",
			MuscleGroups: []string{"legs", "glutes"},
			Equipment:    "bodyweight",
			Difficulty:   domain.DifficultyBeginner,
		},
		{
			Name:         "Plank",
			Description:  "Core strengthening exercise",
			MuscleGroups: []string{"core"},
			Equipment:    "bodyweight",
			Difficulty:   domain.DifficultyBeginner,
		},
		{
			Name:         "Lat Pulldown",
			Description:  "Upper body exercise targeting back and biceps",
			MuscleGroups: []string{"back", "biceps"},
			Equipment:    "machine",
			Difficulty:   domain.DifficultyBeginner,
		},
		{
			Name:         "Leg Press",
			Description:  "Lower body exercise targeting quadriceps and glutes",
			MuscleGroups: []string{"legs", "glutes"},
			Equipment:    "machine",
			Difficulty:   domain.DifficultyBeginner,
		},
		{
			Name:         "Romanian Deadlift",
			Description:  "Lower body exercise targeting hamstrings and glutes",
			MuscleGroups: []string{"legs", "glutes"},
			Equipment:    "barbell",
			Difficulty:   domain.DifficultyIntermediate,
		},
		{
			Name:         "Overhead Press",
			Description:  "Upper body exercise targeting shoulders and triceps",
			MuscleGroups: []string{"shoulders", "triceps"},
			Equipment:    "barbell",
			Difficulty:   domain.DifficultyIntermediate,
		},
		{
			Name:         "Dips",
			Description:  "Upper body exercise targeting triceps and chest",
			MuscleGroups: []string{"triceps", "chest"},
			Equipment:    "bodyweight",
			Difficulty:   domain.DifficultyIntermediate,
		},
		{
			Name:         "Crunches",
			Description:  "Core exercise targeting abdominal muscles",
			MuscleGroups: []string{"core"},
			Equipment:    "bodyweight",
			Difficulty:   domain.DifficultyBeginner,
		},
	}
}
