package service

import (
	"alcyxob/gym-app/internal/domain"
	"alcyxob/gym-app/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newMemberFixture() (MemberService, *fakeMemberRepo, *fakeUserRepo, *fakeTrainerRepo) {
	memberRepo := newFakeMemberRepo()
	userRepo := newFakeUserRepo()
	trainerRepo := newFakeTrainerRepo()
	svc := NewMemberService(memberRepo, userRepo, trainerRepo)
	return svc, memberRepo, userRepo, trainerRepo
}

func TestMemberList_JoinsUserAndTrainer(t *testing.T) {
	svc, memberRepo, userRepo, trainerRepo := newMemberFixture()
	ctx := context.Background()

	trainerUserID, err := userRepo.Create(ctx, &domain.User{Name: "Coach", Email: "coach@example.com", PasswordHash: "x", Role: domain.RoleTrainer})
	require.NoError(t, err)
	trainerID, err := trainerRepo.Create(ctx, &domain.Trainer{UserID: trainerUserID, Specialization: "Strength"})
	require.NoError(t, err)

	memberUserID, err := userRepo.Create(ctx, &domain.User{Name: "Ann", Email: "ann@example.com", PasswordHash: "x", Role: domain.RoleMember})
	require.NoError(t, err)
	_, err = memberRepo.Create(ctx, &domain.Member{
		UserID:         memberUserID,
		MembershipType: domain.MembershipMonthly,
		ExpiryDate:     time.Now().AddDate(0, 1, 0),
		TrainerID:      &trainerID,
	})
	require.NoError(t, err)

	details, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, details, 1)

	d := details[0]
	require.NotNil(t, d.User)
	assert.Equal(t, "Ann", d.User.Name)
	assert.Empty(t, d.User.PasswordHash)
	require.NotNil(t, d.Trainer)
	assert.Equal(t, "Strength", d.Trainer.Trainer.Specialization)
	require.NotNil(t, d.Trainer.User)
	assert.Equal(t, "Coach", d.Trainer.User.Name)
}

func TestMemberList_RemovedTrainerYieldsNil(t *testing.T) {
	svc, memberRepo, userRepo, _ := newMemberFixture()
	ctx := context.Background()

	userID, err := userRepo.Create(ctx, &domain.User{Name: "Bob", Email: "bob@example.com", PasswordHash: "x", Role: domain.RoleMember})
	require.NoError(t, err)
	gone := primitive.NewObjectID()
	_, err = memberRepo.Create(ctx, &domain.Member{UserID: userID, ExpiryDate: time.Now(), TrainerID: &gone})
	require.NoError(t, err)

	details, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Nil(t, details[0].Trainer)
}

func TestMemberGetByUserID(t *testing.T) {
	svc, memberRepo, userRepo, _ := newMemberFixture()
	ctx := context.Background()

	userID, err := userRepo.Create(ctx, &domain.User{Name: "Cara", Email: "cara@example.com", PasswordHash: "x", Role: domain.RoleMember})
	require.NoError(t, err)
	memberID, err := memberRepo.Create(ctx, &domain.Member{UserID: userID, MembershipType: domain.MembershipYearly, ExpiryDate: time.Now().AddDate(1, 0, 0)})
	require.NoError(t, err)

	d, err := svc.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, memberID, d.Member.ID)
	assert.Equal(t, domain.MembershipYearly, d.Member.MembershipType)
	require.NotNil(t, d.User)
	assert.Equal(t, "cara@example.com", d.User.Email)

	_, err = svc.GetByUserID(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestMemberUpdate_AssignsTrainer(t *testing.T) {
	svc, memberRepo, userRepo, trainerRepo := newMemberFixture()
	ctx := context.Background()

	trainerUserID, err := userRepo.Create(ctx, &domain.User{Name: "Coach", Email: "coach@example.com", PasswordHash: "x", Role: domain.RoleTrainer})
	require.NoError(t, err)
	trainerID, err := trainerRepo.Create(ctx, &domain.Trainer{UserID: trainerUserID, Specialization: "Yoga"})
	require.NoError(t, err)

	userID, err := userRepo.Create(ctx, &domain.User{Name: "Dan", Email: "dan@example.com", PasswordHash: "x", Role: domain.RoleMember})
	require.NoError(t, err)
	memberID, err := memberRepo.Create(ctx, &domain.Member{UserID: userID, MembershipType: domain.MembershipMonthly, ExpiryDate: time.Now()})
	require.NoError(t, err)

	newType := domain.MembershipYearly
	d, err := svc.Update(ctx, memberID, repository.MemberUpdate{
		MembershipType: &newType,
		TrainerID:      &trainerID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MembershipYearly, d.Member.MembershipType)
	require.NotNil(t, d.Trainer)
	assert.Equal(t, "Yoga", d.Trainer.Trainer.Specialization)

	_, err = svc.Update(ctx, primitive.NewObjectID(), repository.MemberUpdate{})
	assert.ErrorIs(t, err, ErrMemberNotFound)
}
