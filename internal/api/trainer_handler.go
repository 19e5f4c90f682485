package api

import (
	"alcyxob/gym-app/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type TrainerHandler struct {
	trainerService service.TrainerService
}

func NewTrainerHandler(trainerService service.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService}
}

// TrainerResponse is a trainer profile joined with account details.
type TrainerResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Name           string    `json:"name,omitempty"`
	Email          string    `json:"email,omitempty"`
	Specialization string    `json:"specialization"`
	CreatedAt      time.Time `json:"createdAt"`
}

func MapTrainerToResponse(d *service.TrainerDetail) TrainerResponse {
	resp := TrainerResponse{
		ID:             d.Trainer.ID.Hex(),
		UserID:         d.Trainer.UserID.Hex(),
		Specialization: d.Trainer.Specialization,
		CreatedAt:      d.Trainer.CreatedAt,
	}
	if d.User != nil {
		resp.Name = d.User.Name
		resp.Email = d.User.Email
	}
	return resp
}

// List returns every current trainer, materializing missing profiles.
func (h *TrainerHandler) List(c *gin.Context) {
	details, err := h.trainerService.List(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch trainers")
		return
	}
	trainers := make([]TrainerResponse, 0, len(details))
	for i := range details {
		trainers = append(trainers, MapTrainerToResponse(&details[i]))
	}
	c.JSON(http.StatusOK, gin.H{"trainers": trainers})
}
