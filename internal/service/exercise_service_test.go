package service

import (
	"alcyxob/gym-app/internal/domain"
	"alcyxob/gym-app/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_InsertsDefaultCatalogOnce(t *testing.T) {
	exerciseRepo := newFakeExerciseRepo()
	svc := NewExerciseService(exerciseRepo)
	ctx := context.Background()

	result, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.True(t, result.Seeded)
	assert.Equal(t, int64(15), result.Count)
	assert.Len(t, result.Exercises, 15)

	names := make(map[string]bool, len(result.Exercises))
	for _, e := range result.Exercises {
		names[e.Name] = true
	}
	for _, expected := range []string{"Bench Press", "Squat", "Deadlift", "Plank", "Crunches"} {
		assert.True(t, names[expected], "missing %s", expected)
	}
}

func TestSeed_NoOpWhenCatalogNotEmpty(t *testing.T) {
	exerciseRepo := newFakeExerciseRepo()
	svc := NewExerciseService(exerciseRepo)
	ctx := context.Background()

	_, err := exerciseRepo.Create(ctx, &domain.Exercise{
		Name:         "Kettlebell Swing",
		MuscleGroups: []string{"legs", "core"},
		Equipment:    "kettlebell",
		Difficulty:   domain.DifficultyIntermediate,
	})
	require.NoError(t, err)

	result, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, result.Seeded)
	assert.Equal(t, int64(1), result.Count)

	count, err := exerciseRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSeed_SecondCallReportsExistingCount(t *testing.T) {
	exerciseRepo := newFakeExerciseRepo()
	svc := NewExerciseService(exerciseRepo)
	ctx := context.Background()

	_, err := svc.Seed(ctx)
	require.NoError(t, err)

	result, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, result.Seeded)
	assert.Equal(t, int64(15), result.Count)
}

func TestExerciseList_Filters(t *testing.T) {
	exerciseRepo := newFakeExerciseRepo()
	svc := NewExerciseService(exerciseRepo)
	ctx := context.Background()

	_, err := svc.Seed(ctx)
	require.NoError(t, err)

	core, err := svc.List(ctx, repository.ExerciseFilter{MuscleGroup: "core"})
	require.NoError(t, err)
	assert.Len(t, core, 2) // Plank and Crunches

	barbell, err := svc.List(ctx, repository.ExerciseFilter{Equipment: "barbell", Difficulty: domain.DifficultyIntermediate})
	require.NoError(t, err)
	for _, e := range barbell {
		assert.Equal(t, "barbell", e.Equipment)
		assert.Equal(t, domain.DifficultyIntermediate, e.Difficulty)
	}
}
