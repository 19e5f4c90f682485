package service

import (
	"alcyxob/gym-app/internal/domain"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAttendanceLog_StampsDateAndTime(t *testing.T) {
	attendanceRepo := newFakeAttendanceRepo()
	memberRepo := newFakeMemberRepo()
	svc := NewAttendanceService(attendanceRepo, memberRepo)
	ctx := context.Background()

	memberID, err := memberRepo.Create(ctx, &domain.Member{UserID: primitive.NewObjectID(), ExpiryDate: time.Now()})
	require.NoError(t, err)

	att, err := svc.Log(ctx, memberID)
	require.NoError(t, err)
	assert.False(t, att.ID.IsZero())
	assert.Equal(t, memberID, att.MemberID)
	assert.WithinDuration(t, time.Now(), att.Date, time.Second)
	assert.NotEmpty(t, att.Time)

	history, err := svc.ListByMember(ctx, memberID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestAttendanceLog_UnknownMember(t *testing.T) {
	svc := NewAttendanceService(newFakeAttendanceRepo(), newFakeMemberRepo())

	_, err := svc.Log(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrMemberNotFound)
}
