package service

import (
	"alcyxob/gym-app/internal/domain"
	"alcyxob/gym-app/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrClassNotFound = errors.New("class not found")
)

// ClassDetail is a class joined with its instructor's account details.
type ClassDetail struct {
	Class      domain.Class
	Instructor *TrainerDetail
}

type ClassService interface {
	Create(ctx context.Context, class *domain.Class) (*domain.Class, error)
	Get(ctx context.Context, id primitive.ObjectID) (*ClassDetail, error)
	List(ctx context.Context, filter repository.ClassFilter) ([]ClassDetail, error)
	Update(ctx context.Context, class *domain.Class) (*domain.Class, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type classService struct {
	classRepo   repository.ClassRepository
	trainerRepo repository.TrainerRepository
	userRepo    repository.UserRepository
}

func NewClassService(classRepo repository.ClassRepository, trainerRepo repository.TrainerRepository, userRepo repository.UserRepository) ClassService {
	return &classService{
		classRepo:   classRepo,
		trainerRepo: trainerRepo,
		userRepo:    userRepo,
	}
}

func (s *classService) Create(ctx context.Context, class *domain.Class) (*domain.Class, error) {
	if class.Status == "" {
		class.Status = domain.ClassActive
	}
	id, err := s.classRepo.Create(ctx, class)
	if err != nil {
		return nil, err
	}
	class.ID = id
	return class, nil
}

func (s *classService) Get(ctx context.Context, id primitive.ObjectID) (*ClassDetail, error) {
	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	detail := ClassDetail{Class: *class}
	if class.InstructorID != nil {
		detail.Instructor, err = s.resolveInstructor(ctx, *class.InstructorID)
		if err != nil {
			return nil, err
		}
	}
	return &detail, nil
}

func (s *classService) List(ctx context.Context, filter repository.ClassFilter) ([]ClassDetail, error) {
	classes, err := s.classRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	details := make([]ClassDetail, 0, len(classes))
	cache := make(map[primitive.ObjectID]*TrainerDetail)
	for _, c := range classes {
		d := ClassDetail{Class: c}
		if c.InstructorID != nil {
			instr, ok := cache[*c.InstructorID]
			if !ok {
				instr, err = s.resolveInstructor(ctx, *c.InstructorID)
				if err != nil {
					return nil, err
				}
				cache[*c.InstructorID] = instr
			}
			d.Instructor = instr
		}
		details = append(details, d)
	}
	return details, nil
}

func (s *classService) Update(ctx context.Context, class *domain.Class) (*domain.Class, error) {
	if err := s.classRepo.Update(ctx, class); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return s.classRepo.GetByID(ctx, class.ID)
}

func (s *classService) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.classRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrClassNotFound
	}
	return err
}

// resolveInstructor returns nil when the trainer record no longer exists.
func (s *classService) resolveInstructor(ctx context.Context, trainerID primitive.ObjectID) (*TrainerDetail, error) {
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
