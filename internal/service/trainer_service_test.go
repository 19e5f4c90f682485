package service

import (
	"alcyxob/gym-app/internal/domain"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainerList_MaterializesMissingProfiles(t *testing.T) {
	userRepo := newFakeUserRepo()
	trainerRepo := newFakeTrainerRepo()
	svc := NewTrainerService(trainerRepo, userRepo)

	ctx := context.Background()
	userID, err := userRepo.Create(ctx, &domain.User{
		Name:         "Legacy Coach",
		Email:        "legacy@example.com",
		PasswordHash: "x",
		Role:         domain.RoleTrainer,
	})
	require.NoError(t, err)

	details, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, userID, details[0].Trainer.UserID)
	assert.Equal(t, domain.DefaultSpecialization, details[0].Trainer.Specialization)
	assert.Equal(t, "Legacy Coach", details[0].User.Name)

	// The materialized profile is persisted, not recreated per call.
	trainer, err := trainerRepo.GetByUserID(ctx, userID)
	require.NoError(t, err)

	again, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, trainer.ID, again[0].Trainer.ID)
}

func TestTrainerList_KeepsExistingSpecialization(t *testing.T) {
	userRepo := newFakeUserRepo()
	trainerRepo := newFakeTrainerRepo()
	svc := NewTrainerService(trainerRepo, userRepo)

	ctx := context.Background()
	userID, err := userRepo.Create(ctx, &domain.User{
		Name:         "Strength Coach",
		Email:        "strength@example.com",
		PasswordHash: "x",
		Role:         domain.RoleTrainer,
	})
	require.NoError(t, err)
	_, err = trainerRepo.Create(ctx, &domain.Trainer{UserID: userID, Specialization: "Powerlifting"})
	require.NoError(t, err)

	details, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Powerlifting", details[0].Trainer.Specialization)
}

func TestTrainerList_FiltersStaleProfiles(t *testing.T) {
	userRepo := newFakeUserRepo()
	trainerRepo := newFakeTrainerRepo()
	svc := NewTrainerService(trainerRepo, userRepo)

	ctx := context.Background()

	// Profile whose account was demoted to member.
	demotedID, err := userRepo.Create(ctx, &domain.User{
		Name:         "Former Trainer",
		Email:        "former@example.com",
		PasswordHash: "x",
		Role:         domain.RoleMember,
	})
	require.NoError(t, err)
	_, err = trainerRepo.Create(ctx, &domain.Trainer{UserID: demotedID})
	require.NoError(t, err)

	currentID, err := userRepo.Create(ctx, &domain.User{
		Name:         "Current Trainer",
		Email:        "current@example.com",
		PasswordHash: "x",
		Role:         domain.RoleTrainer,
	})
	require.NoError(t, err)
	_, err = trainerRepo.Create(ctx, &domain.Trainer{UserID: currentID})
	require.NoError(t, err)

	details, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, currentID, details[0].Trainer.UserID)
}
