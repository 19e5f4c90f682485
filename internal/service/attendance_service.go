package service

import (
	"alcyxob/gym-app/internal/domain"
	"alcyxob/gym-app/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrMemberIDRequired = errors.New("memberId is required")
)

type AttendanceService interface {
	// Log appends a check-in for the member stamped with the current time.
	Log(ctx context.Context, memberID primitive.ObjectID) (*domain.Attendance, error)
	ListByMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.Attendance, error)
}

type attendanceService struct {
	attendanceRepo repository.AttendanceRepository
	memberRepo     repository.MemberRepository
}

func NewAttendanceService(attendanceRepo repository.AttendanceRepository, memberRepo repository.MemberRepository) AttendanceService {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		memberRepo:     memberRepo,
	}
}

func (s *attendanceService) Log(ctx context.Context, memberID primitive.ObjectID) (*domain.Attendance, error) {
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	now := time.Now()
	att := &domain.Attendance{
		MemberID: memberID,
		Date:     now,
		Time:     now.Format("3:04:05 PM"),
	}
	id, err := s.attendanceRepo.Create(ctx, att)
	if err != nil {
		return nil, err
	}
	att.ID = id
	return att, nil
}

func (s *attendanceService) ListByMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.Attendance, error) {
	return s.attendanceRepo.ListByMember(ctx, memberID)
}
