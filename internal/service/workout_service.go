package service

import (
	"alcyxob/gym-app/internal/domain"
	"alcyxob/gym-app/internal/repository"
	"context"
	"errors"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrPlanNotFound    = errors.New("workout plan not found")
	ErrSessionNotFound = errors.New("workout session not found")
)

// PlanDetail is a workout plan with its exercise catalog entries resolved.
type PlanDetail struct {
	Plan      domain.WorkoutPlan
	Exercises map[primitive.ObjectID]domain.Exercise
}

type WorkoutService interface {
	CreatePlan(ctx context.Context, plan *domain.WorkoutPlan) (*domain.WorkoutPlan, error)
	GetPlan(ctx context.Context, id primitive.ObjectID) (*PlanDetail, error)
	ListPlans(ctx context.Context, filter repository.PlanFilter) ([]PlanDetail, error)
	UpdatePlan(ctx context.Context, plan *domain.WorkoutPlan) (*domain.WorkoutPlan, error)
	DeletePlan(ctx context.Context, id primitive.ObjectID) error

	StartSession(ctx context.Context, session *domain.WorkoutSession) (*domain.WorkoutSession, error)
	GetSession(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error)
	ListSessions(ctx context.Context, filter repository.SessionFilter) ([]domain.WorkoutSession, error)
	UpdateSession(ctx context.Context, session *domain.WorkoutSession) (*domain.WorkoutSession, error)
	DeleteSession(ctx context.Context, id primitive.ObjectID) error
}

type workoutService struct {
	planRepo     repository.WorkoutPlanRepository
	sessionRepo  repository.WorkoutSessionRepository
	exerciseRepo repository.ExerciseRepository
}

func NewWorkoutService(planRepo repository.WorkoutPlanRepository, sessionRepo repository.WorkoutSessionRepository, exerciseRepo repository.ExerciseRepository) WorkoutService {
	return &workoutService{
		planRepo:     planRepo,
		sessionRepo:  sessionRepo,
		exerciseRepo: exerciseRepo,
	}
}

func (s *workoutService) CreatePlan(ctx context.Context, plan *domain.WorkoutPlan) (*domain.WorkoutPlan, error) {
	if plan.Status == "" {
		plan.Status = domain.PlanActive
	}
	id, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = id
	return plan, nil
}

func (s *workoutService) GetPlan(ctx context.Context, id primitive.ObjectID) (*PlanDetail, error) {
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	exercises, err := s.resolveExercises(ctx, []domain.WorkoutPlan{*plan})
	if err != nil {
		return nil, err
	}
	return &PlanDetail{Plan: *plan, Exercises: exercises}, nil
}

func (s *workoutService) ListPlans(ctx context.Context, filter repository.PlanFilter) ([]PlanDetail, error) {
	plans, err := s.planRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	exercises, err := s.resolveExercises(ctx, plans)
	if err != nil {
		return nil, err
	}
	details := make([]PlanDetail, 0, len(plans))
	for _, p := range plans {
		details = append(details, PlanDetail{Plan: p, Exercises: exercises})
	}
	return details, nil
}

func (s *workoutService) UpdatePlan(ctx context.Context, plan *domain.WorkoutPlan) (*domain.WorkoutPlan, error) {
	if err := s.planRepo.Update(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return s.planRepo.GetByID(ctx, plan.ID)
}

func (s *workoutService) DeletePlan(ctx context.Context, id primitive.ObjectID) error {
	err := s.planRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPlanNotFound
	}
	return err
}

// resolveExercises batch-loads every exercise referenced by the plans.
func (s *workoutService) resolveExercises(ctx context.Context, plans []domain.WorkoutPlan) (map[primitive.ObjectID]domain.Exercise, error) {
	seen := make(map[primitive.ObjectID]struct{})
	ids := make([]primitive.ObjectID, 0)
	for _, p := range plans {
		for _, pe := range p.Exercises {
			if _, ok := seen[pe.ExerciseID]; !ok {
				seen[pe.ExerciseID] = struct{}{}
				ids = append(ids, pe.ExerciseID)
			}
		}
	}
	result := make(map[primitive.ObjectID]domain.Exercise, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	exercises, err := s.exerciseRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, e := range exercises {
		result[e.ID] = e
	}
	return result, nil
}

func (s *workoutService) StartSession(ctx context.Context, session *domain.WorkoutSession) (*domain.WorkoutSession, error) {
	now := time.Now()
	if session.Date.IsZero() {
		session.Date = now
	}
	if session.StartTime.IsZero() {
		session.StartTime = now
	}
	id, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		return nil, err
	}
	session.ID = id
	return session, nil
}

func (s *workoutService) GetSession(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

func (s *workoutService) ListSessions(ctx context.Context, filter repository.SessionFilter) ([]domain.WorkoutSession, error) {
	return s.sessionRepo.List(ctx, filter)
}

// UpdateSession persists session edits. Completing a session without an end
// time stamps it with now and derives the duration in whole minutes.
func (s *workoutService) UpdateSession(ctx context.Context, session *domain.WorkoutSession) (*domain.WorkoutSession, error) {
	if session.Completed && session.EndTime == nil {
		now := time.Now()
		session.EndTime = &now
	}
	if session.EndTime != nil && session.Duration == nil && !session.StartTime.IsZero() {
		minutes := int(math.Round(session.EndTime.Sub(session.StartTime).Minutes()))
		session.Duration = &minutes
	}

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return s.sessionRepo.GetByID(ctx, session.ID)
}

func (s *workoutService) DeleteSession(ctx context.Context, id primitive.ObjectID) error {
	err := s.sessionRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrSessionNotFound
	}
	return err
}
