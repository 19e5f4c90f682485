package api

import (
	"alcyxob/gym-app/internal/domain"
	"alcyxob/gym-app/internal/repository"
	"alcyxob/gym-app/internal/service"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ClassHandler struct {
	classService service.ClassService
}

func NewClassHandler(classService service.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

type ScheduleSlotRequest struct {
	DayOfWeek int    `json:"dayOfWeek" binding:"min=0,max=6"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Duration  int    `json:"duration" binding:"required,min=1"`
}

type CreateClassRequest struct {
	Name         string                `json:"name" binding:"required"`
	Description  string                `json:"description,omitempty"`
	InstructorID string                `json:"instructorId,omitempty"`
	Schedule     []ScheduleSlotRequest `json:"schedule"`
	Capacity     int                   `json:"capacity" binding:"required,min=1"`
	Price        float64               `json:"price" binding:"min=0"`
	Category     string                `json:"category" binding:"required"`
	Status       domain.ClassStatus    `json:"status,omitempty" binding:"omitempty,oneof=active inactive cancelled"`
}

type ClassResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	Instructor  *TrainerResponse      `json:"instructor,omitempty"`
	Schedule    []domain.ScheduleSlot `json:"schedule"`
	Capacity    int                   `json:"capacity"`
	Price       float64               `json:"price"`
	Category    string                `json:"category"`
	Status      domain.ClassStatus    `json:"status"`
	CreatedAt   time.Time             `json:"createdAt"`
}

func MapClassToResponse(d *service.ClassDetail) ClassResponse {
	resp := ClassResponse{
		ID:          d.Class.ID.Hex(),
		Name:        d.Class.Name,
		Description: d.Class.Description,
		Schedule:    d.Class.Schedule,
		Capacity:    d.Class.Capacity,
		Price:       d.Class.Price,
		Category:    d.Class.Category,
		Status:      d.Class.Status,
		CreatedAt:   d.Class.CreatedAt,
	}
	if d.Instructor != nil {
		t := MapTrainerToResponse(d.Instructor)
		resp.Instructor = &t
	}
	return resp
}

func (r *CreateClassRequest) toDomain() (*domain.Class, error) {
	class := &domain.Class{
		Name:        r.Name,
		Description: r.Description,
		Capacity:    r.Capacity,
		Price:       r.Price,
		Category:    r.Category,
		Status:      r.Status,
	}
	if r.InstructorID != "" {
		id, err := primitive.ObjectIDFromHex(r.InstructorID)
		if err != nil {
			return nil, errors.New("invalid instructorId format")
		}
		class.InstructorID = &id
	}
	for _, slot := range r.Schedule {
		class.Schedule = append(class.Schedule, domain.ScheduleSlot{
			DayOfWeek: slot.DayOfWeek,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Duration:  slot.Duration,
		})
	}
	return class, nil
}

func (h *ClassHandler) Create(c *gin.Context) {
	var req CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	class, err := req.toDomain()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.classService.Create(c.Request.Context(), class)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create class")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "class": MapClassToResponse(&service.ClassDetail{Class: *created})})
}

func (h *ClassHandler) Get(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	detail, err := h.classService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch class")
		return
	}
	c.JSON(http.StatusOK, gin.H{"class": MapClassToResponse(detail)})
}

func (h *ClassHandler) List(c *gin.Context) {
	filter := repository.ClassFilter{
		Category: c.Query("category"),
		Status:   domain.ClassStatus(c.Query("status")),
	}
	details, err := h.classService.List(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch classes")
		return
	}
	classes := make([]ClassResponse, 0, len(details))
	for i := range details {
		classes = append(classes, MapClassToResponse(&details[i]))
	}
	c.JSON(http.StatusOK, gin.H{"classes": classes})
}

func (h *ClassHandler) Update(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var req CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	class, err := req.toDomain()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	class.ID = id

	updated, err := h.classService.Update(c.Request.Context(), class)
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to update class")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "class": MapClassToResponse(&service.ClassDetail{Class: *updated})})
}

func (h *ClassHandler) Delete(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.classService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to delete class")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
