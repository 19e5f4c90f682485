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
	ErrBookingNotFound  = errors.New("booking not found")
	ErrClassFull        = errors.New("Class is fully booked")
	ErrDuplicateBooking = errors.New("You already have a booking for this class")
)

// BookingDetail is a booking joined with its member and class documents.
type BookingDetail struct {
	Booking domain.Booking
	Member  *MemberDetail
	Class   *domain.Class
}

type BookingService interface {
	// Book admits a member into a class occurrence. The seat count for
	// (classId, date) must stay under the class capacity and the member may
	// hold at most one confirmed booking per occurrence.
	Book(ctx context.Context, memberID, classID primitive.ObjectID, date time.Time) (*domain.Booking, error)
	Get(ctx context.Context, id primitive.ObjectID) (*BookingDetail, error)
	List(ctx context.Context, filter repository.BookingFilter) ([]BookingDetail, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.BookingStatus, reason string) (*domain.Booking, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	classRepo   repository.ClassRepository
	memberRepo  repository.MemberRepository
}

func NewBookingService(bookingRepo repository.BookingRepository, classRepo repository.ClassRepository, memberRepo repository.MemberRepository) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		classRepo:   classRepo,
		memberRepo:  memberRepo,
	}
}

func (s *bookingService) Book(ctx context.Context, memberID, classID primitive.ObjectID, date time.Time) (*domain.Booking, error) {
	class, err := s.classRepo.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	seats, err := s.bookingRepo.CountSeats(ctx, classID, date)
	if err != nil {
		return nil, err
	}
	if seats >= int64(class.Capacity) {
		return nil, ErrClassFull
	}

	existing, err := s.bookingRepo.FindConfirmed(ctx, memberID, classID, date)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateBooking
	}

	booking := &domain.Booking{
		MemberID: memberID,
		ClassID:  classID,
		Date:     date,
		Status:   domain.BookingConfirmed,
	}
	id, err := s.bookingRepo.Create(ctx, booking)
	if err != nil {
		// The partial unique index catches concurrent duplicate inserts that
		// slipped past the FindConfirmed check.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateBooking
		}
		return nil, err
	}
	booking.ID = id
	return booking, nil
}

func (s *bookingService) Get(ctx context.Context, id primitive.ObjectID) (*BookingDetail, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	detail := BookingDetail{Booking: *booking}
	if err := s.populate(ctx, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *bookingService) List(ctx context.Context, filter repository.BookingFilter) ([]BookingDetail, error) {
	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	classIDs := make([]primitive.ObjectID, 0, len(bookings))
	memberIDs := make([]primitive.ObjectID, 0, len(bookings))
	for _, b := range bookings {
		classIDs = append(classIDs, b.ClassID)
		memberIDs = append(memberIDs, b.MemberID)
	}

	classes, err := s.classRepo.GetByIDs(ctx, classIDs)
	if err != nil {
		return nil, err
	}
	classByID := make(map[primitive.ObjectID]domain.Class, len(classes))
	for _, c := range classes {
		classByID[c.ID] = c
	}

	members, err := s.memberRepo.GetByIDs(ctx, memberIDs)
	if err != nil {
		return nil, err
	}
	memberByID := make(map[primitive.ObjectID]domain.Member, len(members))
	for _, m := range members {
		memberByID[m.ID] = m
	}

	details := make([]BookingDetail, 0, len(bookings))
	for _, b := range bookings {
		d := BookingDetail{Booking: b}
		if c, ok := classByID[b.ClassID]; ok {
			class := c
			d.Class = &class
		}
		if m, ok := memberByID[b.MemberID]; ok {
			d.Member = &MemberDetail{Member: m}
		}
		details = append(details, d)
	}
	return details, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.BookingStatus, reason string) (*domain.Booking, error) {
	var cancelledAt *time.Time
	if status == domain.BookingCancelled {
		now := time.Now()
		cancelledAt = &now
	}
	booking, err := s.bookingRepo.UpdateStatus(ctx, id, status, cancelledAt, reason)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.bookingRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrBookingNotFound
	}
	return err
}

func (s *bookingService) populate(ctx context.Context, d *BookingDetail) error {
	class, err := s.classRepo.GetByID(ctx, d.Booking.ClassID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	d.Class = class

	m, err := s.memberRepo.GetByID(ctx, d.Booking.MemberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	d.Member = &MemberDetail{Member: *m}
	return nil
}
