package service

import (
	"alcyxob/gym-app/internal/domain"
	"alcyxob/gym-app/internal/repository"
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainerDetail is a trainer profile joined with its account.
type TrainerDetail struct {
	Trainer domain.Trainer
	User    *domain.User
}

type TrainerService interface {
	// List returns every current trainer. Accounts with role trainer that
	// lack a profile get one materialized on the fly; profiles whose account
	// lost the trainer role are filtered out.
	List(ctx context.Context) ([]TrainerDetail, error)
}

type trainerService struct {
	trainerRepo repository.TrainerRepository
	userRepo    repository.UserRepository
}

func NewTrainerService(trainerRepo repository.TrainerRepository, userRepo repository.UserRepository) TrainerService {
	return &trainerService{
		trainerRepo: trainerRepo,
		userRepo:    userRepo,
	}
}

func (s *trainerService) List(ctx context.Context) ([]TrainerDetail, error) {
	trainerUsers, err := s.userRepo.GetByRole(ctx, domain.RoleTrainer)
	if err != nil {
		return nil, err
	}

	trainers, err := s.trainerRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	byUserID := make(map[primitive.ObjectID]domain.Trainer, len(trainers))
	for _, t := range trainers {
		byUserID[t.UserID] = t
	}

	details := make([]TrainerDetail, 0, len(trainerUsers))
	for i := range trainerUsers {
		u := trainerUsers[i]
		u.PasswordHash = ""

		trainer, ok := byUserID[u.ID]
		if !ok {
			// Accounts created before trainer provisioning existed have no
			// profile yet. Create one so downstream references work.
			created := &domain.Trainer{
				UserID:         u.ID,
				Specialization: domain.DefaultSpecialization,
			}
			id, err := s.trainerRepo.Create(ctx, created)
			if err != nil {
				if errors.Is(err, repository.ErrDuplicateKey) {
					// Lost a race with a concurrent listing; reload.
					existing, gerr := s.trainerRepo.GetByUserID(ctx, u.ID)
					if gerr != nil {
						return nil, gerr
					}
					trainer = *existing
				} else {
					return nil, err
				}
			} else {
				created.ID = id
				trainer = *created
				log.WithField("userId", u.ID.Hex()).Info("materialized trainer profile")
			}
		}

		user := u
		details = append(details, TrainerDetail{Trainer: trainer, User: &user})
	}
	return details, nil
}
