package api

import (
	"alcyxob/gym-app/internal/domain"
	"alcyxob/gym-app/internal/repository"
	"alcyxob/gym-app/internal/service"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

type CreateExerciseRequest struct {
	Name         string            `json:"name" binding:"required"`
	Description  string            `json:"description,omitempty"`
	MuscleGroups []string          `json:"muscleGroups" binding:"required,min=1"`
	Equipment    string            `json:"equipment" binding:"required"`
	Difficulty   domain.Difficulty `json:"difficulty" binding:"required,oneof=beginner intermediate advanced"`
	Instructions string            `json:"instructions,omitempty"`
	VideoURL     string            `json:"videoUrl,omitempty"`
	ImageURL     string            `json:"imageUrl,omitempty"`
}

func (h *ExerciseHandler) Create(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercise := &domain.Exercise{
		Name:         req.Name,
		Description:  req.Description,
		MuscleGroups: req.MuscleGroups,
		Equipment:    req.Equipment,
		Difficulty:   req.Difficulty,
		Instructions: req.Instructions,
		VideoURL:     req.VideoURL,
		ImageURL:     req.ImageURL,
	}
	created, err := h.exerciseService.Create(c.Request.Context(), exercise)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create exercise")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "exercise": created})
}

func (h *ExerciseHandler) List(c *gin.Context) {
	filter := repository.ExerciseFilter{
		MuscleGroup: c.Query("muscleGroup"),
		Equipment:   c.Query("equipment"),
		Difficulty:  domain.Difficulty(c.Query("difficulty")),
		Search:      c.Query("search"),
	}
	exercises, err := h.exerciseService.List(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch exercises")
		return
	}
	c.JSON(http.StatusOK, gin.H{"exercises": exercises})
}

// Seed loads the default catalog into an empty collection.
func (h *ExerciseHandler) Seed(c *gin.Context) {
	result, err := h.exerciseService.Seed(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to seed exercises")
		return
	}
	if !result.Seeded {
		c.JSON(http.StatusOK, gin.H{
			"message": "Exercises already seeded",
			"count":   result.Count,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   fmt.Sprintf("Successfully seeded %d exercises", result.Count),
		"exercises": result.Exercises,
	})
}
