package api

import (
	"alcyxob/gym-app/internal/domain"
	"alcyxob/gym-app/internal/repository"
	"alcyxob/gym-app/internal/service"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WorkoutHandler struct {
	workoutService service.WorkoutService
}

func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- Plans ---

type PlanExerciseRequest struct {
	ExerciseID string   `json:"exerciseId" binding:"required"`
	Sets       int      `json:"sets" binding:"required,min=1"`
	Reps       int      `json:"reps" binding:"required,min=1"`
	Weight     *float64 `json:"weight,omitempty"`
	RestTime   *int     `json:"restTime,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	Order      int      `json:"order"`
}

type WorkoutPlanRequest struct {
	Name        string                `json:"name" binding:"required"`
	Description string                `json:"description,omitempty"`
	TrainerID   string                `json:"trainerId" binding:"required"`
	MemberID    string                `json:"memberId,omitempty"`
	Exercises   []PlanExerciseRequest `json:"exercises"`
	Duration    int                   `json:"duration,omitempty"`
	Difficulty  domain.Difficulty     `json:"difficulty,omitempty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Status      domain.PlanStatus     `json:"status,omitempty" binding:"omitempty,oneof=active archived"`
}

// PlanExerciseResponse is a prescription item with its catalog entry inlined.
type PlanExerciseResponse struct {
	Exercise *domain.Exercise `json:"exercise,omitempty"`
	domain.PlanExercise
}

type WorkoutPlanResponse struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	TrainerID   string                 `json:"trainerId"`
	MemberID    *string                `json:"memberId,omitempty"`
	Exercises   []PlanExerciseResponse `json:"exercises"`
	Duration    int                    `json:"duration"`
	Difficulty  domain.Difficulty      `json:"difficulty"`
	Status      domain.PlanStatus      `json:"status"`
	CreatedAt   time.Time              `json:"createdAt"`
}

func MapPlanToResponse(d *service.PlanDetail) WorkoutPlanResponse {
	resp := WorkoutPlanResponse{
		ID:          d.Plan.ID.Hex(),
		Name:        d.Plan.Name,
		Description: d.Plan.Description,
		TrainerID:   d.Plan.TrainerID.Hex(),
		Duration:    d.Plan.Duration,
		Difficulty:  d.Plan.Difficulty,
		Status:      d.Plan.Status,
		CreatedAt:   d.Plan.CreatedAt,
		Exercises:   make([]PlanExerciseResponse, 0, len(d.Plan.Exercises)),
	}
	if d.Plan.MemberID != nil {
		hex := d.Plan.MemberID.Hex()
		resp.MemberID = &hex
	}
	for _, pe := range d.Plan.Exercises {
		item := PlanExerciseResponse{PlanExercise: pe}
		if d.Exercises != nil {
			if ex, ok := d.Exercises[pe.ExerciseID]; ok {
				exercise := ex
				item.Exercise = &exercise
			}
		}
		resp.Exercises = append(resp.Exercises, item)
	}
	return resp
}

func (r *WorkoutPlanRequest) toDomain() (*domain.WorkoutPlan, error) {
	trainerID, err := primitive.ObjectIDFromHex(r.TrainerID)
	if err != nil {
		return nil, errors.New("invalid trainerId format")
	}
	plan := &domain.WorkoutPlan{
		Name:        r.Name,
		Description: r.Description,
		TrainerID:   trainerID,
		Duration:    r.Duration,
		Difficulty:  r.Difficulty,
		Status:      r.Status,
	}
	if r.MemberID != "" {
		memberID, err := primitive.ObjectIDFromHex(r.MemberID)
		if err != nil {
			return nil, errors.New("invalid memberId format")
		}
		plan.MemberID = &memberID
	}
	for _, pe := range r.Exercises {
		exerciseID, err := primitive.ObjectIDFromHex(pe.ExerciseID)
		if err != nil {
			return nil, errors.New("invalid exerciseId format")
		}
		plan.Exercises = append(plan.Exercises, domain.PlanExercise{
			ExerciseID: exerciseID,
			Sets:       pe.Sets,
			Reps:       pe.Reps,
			Weight:     pe.Weight,
			RestTime:   pe.RestTime,
			Notes:      pe.Notes,
			Order:      pe.Order,
		})
	}
	return plan, nil
}

func (h *WorkoutHandler) CreatePlan(c *gin.Context) {
	var req WorkoutPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	plan, err := req.toDomain()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.workoutService.CreatePlan(c.Request.Context(), plan)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create workout plan")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "plan": MapPlanToResponse(&service.PlanDetail{Plan: *created})})
}

func (h *WorkoutHandler) GetPlan(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	detail, err := h.workoutService.GetPlan(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch workout plan")
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": MapPlanToResponse(detail)})
}

func (h *WorkoutHandler) ListPlans(c *gin.Context) {
	trainerID, err := optionalObjectIDQuery(c, "trainerId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	memberID, err := optionalObjectIDQuery(c, "memberId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	details, err := h.workoutService.ListPlans(c.Request.Context(), repository.PlanFilter{
		TrainerID: trainerID,
		MemberID:  memberID,
		Status:    domain.PlanStatus(c.Query("status")),
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch workout plans")
		return
	}
	plans := make([]WorkoutPlanResponse, 0, len(details))
	for i := range details {
		plans = append(plans, MapPlanToResponse(&details[i]))
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

func (h *WorkoutHandler) UpdatePlan(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	var req WorkoutPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	plan, err := req.toDomain()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	plan.ID = id

	updated, err := h.workoutService.UpdatePlan(c.Request.Context(), plan)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to update workout plan")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "plan": MapPlanToResponse(&service.PlanDetail{Plan: *updated})})
}

func (h *WorkoutHandler) DeletePlan(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.workoutService.DeletePlan(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to delete workout plan")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --- Sessions ---

type SetRecordRequest struct {
	Reps      int      `json:"reps" binding:"min=0"`
	Weight    *float64 `json:"weight,omitempty"`
	Completed bool     `json:"completed"`
	Notes     string   `json:"notes,omitempty"`
}

type SessionExerciseRequest struct {
	ExerciseID string             `json:"exerciseId" binding:"required"`
	Sets       []SetRecordRequest `json:"sets"`
	Completed  bool               `json:"completed"`
}

type WorkoutSessionRequest struct {
	MemberID      string                   `json:"memberId" binding:"required"`
	WorkoutPlanID string                   `json:"workoutPlanId,omitempty"`
	Date          string                   `json:"date,omitempty"`
	StartTime     string                   `json:"startTime,omitempty"`
	EndTime       string                   `json:"endTime,omitempty"`
	Duration      *int                     `json:"duration,omitempty"`
	Exercises     []SessionExerciseRequest `json:"exercises"`
	Notes         string                   `json:"notes,omitempty"`
	Completed     bool                     `json:"completed"`
}

func (r *WorkoutSessionRequest) toDomain() (*domain.WorkoutSession, error) {
	memberID, err := primitive.ObjectIDFromHex(r.MemberID)
	if err != nil {
		return nil, errors.New("invalid memberId format")
	}
	session := &domain.WorkoutSession{
		MemberID:  memberID,
		Duration:  r.Duration,
		Notes:     r.Notes,
		Completed: r.Completed,
	}
	if r.WorkoutPlanID != "" {
		planID, err := primitive.ObjectIDFromHex(r.WorkoutPlanID)
		if err != nil {
			return nil, errors.New("invalid workoutPlanId format")
		}
		session.WorkoutPlanID = &planID
	}
	if r.Date != "" {
		date, err := parseDate(r.Date)
		if err != nil {
			return nil, errors.New("invalid date")
		}
		session.Date = date
	}
	if r.StartTime != "" {
		start, err := time.Parse(time.RFC3339, r.StartTime)
		if err != nil {
			return nil, errors.New("invalid startTime")
		}
		session.StartTime = start
	}
	if r.EndTime != "" {
		end, err := time.Parse(time.RFC3339, r.EndTime)
		if err != nil {
			return nil, errors.New("invalid endTime")
		}
		session.EndTime = &end
	}
	for _, se := range r.Exercises {
		exerciseID, err := primitive.ObjectIDFromHex(se.ExerciseID)
		if err != nil {
			return nil, errors.New("invalid exerciseId format")
		}
		sets := make([]domain.SetRecord, 0, len(se.Sets))
		for _, set := range se.Sets {
			sets = append(sets, domain.SetRecord{
				Reps:      set.Reps,
				Weight:    set.Weight,
				Completed: set.Completed,
				Notes:     set.Notes,
			})
		}
		session.Exercises = append(session.Exercises, domain.SessionExercise{
			ExerciseID: exerciseID,
			Sets:       sets,
			Completed:  se.Completed,
		})
	}
	return session, nil
}

func (h *WorkoutHandler) CreateSession(c *gin.Context) {
	var req WorkoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	session, err := req.toDomain()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.workoutService.StartSession(c.Request.Context(), session)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create workout session")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "session": created})
}

func (h *WorkoutHandler) GetSession(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	session, err := h.workoutService.GetSession(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch workout session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

func (h *WorkoutHandler) ListSessions(c *gin.Context) {
	memberID, err := optionalObjectIDQuery(c, "memberId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	start, err := optionalDateQuery(c, "startDate")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	end, err := optionalDateQuery(c, "endDate")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	filter := repository.SessionFilter{
		MemberID: memberID,
		Date:     repository.DateRange{Start: start, End: end},
	}
	if rawCompleted := c.Query("completed"); rawCompleted != "" {
		completed, err := strconv.ParseBool(rawCompleted)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid completed value")
			return
		}
		filter.Completed = &completed
	}

	sessions, err := h.workoutService.ListSessions(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch workout sessions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (h *WorkoutHandler) UpdateSession(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	var req WorkoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	session, err := req.toDomain()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	session.ID = id

	// Preserve the original start time so duration derivation has an anchor.
	if session.StartTime.IsZero() {
		existing, err := h.workoutService.GetSession(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, service.ErrSessionNotFound) {
				abortWithError(c, http.StatusNotFound, err.Error())
				return
			}
			abortWithError(c, http.StatusInternalServerError, "Failed to update workout session")
			return
		}
		session.StartTime = existing.StartTime
		if session.Date.IsZero() {
			session.Date = existing.Date
		}
	}

	updated, err := h.workoutService.UpdateSession(c.Request.Context(), session)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to update workout session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "session": updated})
}

func (h *WorkoutHandler) DeleteSession(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.workoutService.DeleteSession(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to delete workout session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
