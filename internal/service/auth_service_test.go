package service

import (
	"alcyxob/gym-app/internal/domain"
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func newAuthFixture() (AuthService, *fakeUserRepo, *fakeMemberRepo, *fakeTrainerRepo) {
	userRepo := newFakeUserRepo()
	memberRepo := newFakeMemberRepo()
	trainerRepo := newFakeTrainerRepo()
	svc := NewAuthService(userRepo, memberRepo, trainerRepo, testSecret, 168*time.Hour)
	return svc, userRepo, memberRepo, trainerRepo
}

func TestRegister_MemberProvisionsProfile(t *testing.T) {
	svc, _, memberRepo, _ := newAuthFixture()

	user, err := svc.Register(context.Background(), RegisterInput{
		Name:           "Priya Nair",
		Email:          "priya@example.com",
		Password:       "supersecret",
		Role:           domain.RoleMember,
		Gender:         "female",
		MembershipType: domain.MembershipYearly,
		IDProof:        "passport",
	})
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)

	member, err := memberRepo.GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MembershipYearly, member.MembershipType)
	assert.WithinDuration(t, time.Now().AddDate(1, 0, 0), member.ExpiryDate, time.Minute)
}

func TestRegister_DefaultRoleAndMembership(t *testing.T) {
	svc, _, memberRepo, _ := newAuthFixture()

	user, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Default Dan",
		Email:    "dan@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, user.Role)

	member, err := memberRepo.GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MembershipMonthly, member.MembershipType)
	assert.WithinDuration(t, time.Now().AddDate(0, 1, 0), member.ExpiryDate, time.Minute)
}

func TestRegister_TrainerProvisionsProfile(t *testing.T) {
	svc, _, _, trainerRepo := newAuthFixture()

	user, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Coach Carter",
		Email:    "coach@example.com",
		Password: "supersecret",
		Role:     domain.RoleTrainer,
	})
	require.NoError(t, err)

	trainer, err := trainerRepo.GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSpecialization, trainer.Specialization)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	input := RegisterInput{
		Name:     "First",
		Email:    "taken@example.com",
		Password: "supersecret",
		Role:     domain.RoleAdmin,
	}
	_, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	input.Name = "Second"
	_, err = svc.Register(context.Background(), input)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegister_InvalidRole(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Nope",
		Email:    "nope@example.com",
		Password: "supersecret",
		Role:     "superuser",
	})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestLogin_TokenCarriesIdentity(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	registered, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Admin Ana",
		Email:    "ana@example.com",
		Password: "supersecret",
		Role:     domain.RoleAdmin,
	})
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "ana@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.PasswordHash)

	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	assert.Equal(t, registered.ID.Hex(), claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	// Tokens stay valid for a week.
	assert.WithinDuration(t, time.Now().Add(168*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "supersecret",
		Role:     domain.RoleMember,
	})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "bob@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}
