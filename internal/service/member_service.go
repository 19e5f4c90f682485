package service

import (
	"alcyxob/gym-app/internal/domain"
	"alcyxob/gym-app/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrMemberNotFound = errors.New("member not found")
)

// MemberDetail is a member profile joined with its account and, when a
// trainer is assigned, that trainer's details.
type MemberDetail struct {
	Member  domain.Member
	User    *domain.User
	Trainer *TrainerDetail
}

type MemberService interface {
	List(ctx context.Context) ([]MemberDetail, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*MemberDetail, error)
	Update(ctx context.Context, id primitive.ObjectID, upd repository.MemberUpdate) (*MemberDetail, error)
}

type memberService struct {
	memberRepo  repository.MemberRepository
	userRepo    repository.UserRepository
	trainerRepo repository.TrainerRepository
}

func NewMemberService(memberRepo repository.MemberRepository, userRepo repository.UserRepository, trainerRepo repository.TrainerRepository) MemberService {
	return &memberService{
		memberRepo:  memberRepo,
		userRepo:    userRepo,
		trainerRepo: trainerRepo,
	}
}

// List returns every member with account details and assigned trainer
// resolved in two batch lookups.
func (s *memberService) List(ctx context.Context) ([]MemberDetail, error) {
	members, err := s.memberRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	userIDs := make([]primitive.ObjectID, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
	}
	users, err := s.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	usersByID := make(map[primitive.ObjectID]domain.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	details := make([]MemberDetail, 0, len(members))
	for _, m := range members {
		d := MemberDetail{Member: m}
		if u, ok := usersByID[m.UserID]; ok {
			u.PasswordHash = ""
			d.User = &u
		}
		if m.TrainerID != nil {
			td, err := s.resolveTrainer(ctx, *m.TrainerID)
			if err != nil {
				return nil, err
			}
			d.Trainer = td
		}
		details = append(details, d)
	}
	return details, nil
}

// GetByUserID looks up the member profile belonging to an account.
func (s *memberService) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*MemberDetail, error) {
	member, err := s.memberRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return s.detail(ctx, member)
}

// Update applies admin edits, including trainer assignment, and returns the
// refreshed joined view.
func (s *memberService) Update(ctx context.Context, id primitive.ObjectID, upd repository.MemberUpdate) (*MemberDetail, error) {
	member, err := s.memberRepo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return s.detail(ctx, member)
}

func (s *memberService) detail(ctx context.Context, member *domain.Member) (*MemberDetail, error) {
	d := &MemberDetail{Member: *member}

	user, err := s.userRepo.GetByID(ctx, member.UserID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if user != nil {
		user.PasswordHash = ""
		d.User = user
	}

	if member.TrainerID != nil {
		td, err := s.resolveTrainer(ctx, *member.TrainerID)
		if err != nil {
			return nil, err
		}
		d.Trainer = td
	}
	return d, nil
}

// resolveTrainer returns nil (not an error) when the referenced trainer has
// since been removed.
func (s *memberService) resolveTrainer(ctx context.Context, trainerID primitive.ObjectID) (*TrainerDetail, error) {
	trainer, err := s.trainerRepo.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, trainer.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &TrainerDetail{Trainer: *trainer}, nil
		}
		return nil, err
	}
	user.PasswordHash = ""
	return &TrainerDetail{Trainer: *trainer, User: user}, nil
}
