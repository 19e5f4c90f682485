package api

import (
	"alcyxob/gym-app/internal/domain"
	"alcyxob/gym-app/internal/repository"
	"alcyxob/gym-app/internal/service"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProgressHandler struct {
	progressService service.ProgressService
}

func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

type ProgressRequest struct {
	MemberID     string               `json:"memberId" binding:"required"`
	Date         string               `json:"date,omitempty"`
	Weight       *float64             `json:"weight,omitempty"`
	BodyFat      *float64             `json:"bodyFat,omitempty"`
	MuscleMass   *float64             `json:"muscleMass,omitempty"`
	Measurements *domain.Measurements `json:"measurements,omitempty"`
	Photos       []string             `json:"photos,omitempty"`
	Notes        string               `json:"notes,omitempty"`
}

type PhotoUploadURLRequest struct {
	MemberID    string `json:"memberId" binding:"required"`
	ContentType string `json:"contentType,omitempty"`
}

func (r *ProgressRequest) toDomain() (*domain.Progress, error) {
	memberID, err := primitive.ObjectIDFromHex(r.MemberID)
	if err != nil {
		return nil, errors.New("invalid memberId format")
	}
	progress := &domain.Progress{
		MemberID:     memberID,
		Weight:       r.Weight,
		BodyFat:      r.BodyFat,
		MuscleMass:   r.MuscleMass,
		Measurements: r.Measurements,
		Photos:       r.Photos,
		Notes:        r.Notes,
	}
	if r.Date != "" {
		date, err := parseDate(r.Date)
		if err != nil {
			return nil, errors.New("invalid date")
		}
		progress.Date = date
	}
	return progress, nil
}

func (h *ProgressHandler) Create(c *gin.Context) {
	var req ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	progress, err := req.toDomain()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.progressService.Create(c.Request.Context(), progress)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create progress record")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "progress": created})
}

func (h *ProgressHandler) Get(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	progress, err := h.progressService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProgressNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch progress record")
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": progress})
}

func (h *ProgressHandler) List(c *gin.Context) {
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

	records, err := h.progressService.List(c.Request.Context(), repository.ProgressFilter{
		MemberID: memberID,
		Date:     repository.DateRange{Start: start, End: end},
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch progress records")
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": records})
}

func (h *ProgressHandler) Update(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	var req ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	progress, err := req.toDomain()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	progress.ID = id

	updated, err := h.progressService.Update(c.Request.Context(), progress)
	if err != nil {
		if errors.Is(err, service.ErrProgressNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to update progress record")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "progress": updated})
}

func (h *ProgressHandler) Delete(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.progressService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProgressNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to delete progress record")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// PhotoUploadURL issues a presigned PUT URL for a new progress photo.
func (h *ProgressHandler) PhotoUploadURL(c *gin.Context) {
	var req PhotoUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	memberID, err := primitive.ObjectIDFromHex(req.MemberID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid memberId format")
		return
	}

	ticket, err := h.progressService.PhotoUploadURL(c.Request.Context(), memberID, req.ContentType)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"objectKey": ticket.ObjectKey,
		"uploadUrl": ticket.UploadURL,
		"expiresIn": int(ticket.ExpiresIn.Seconds()),
	})
}

// PhotoDownloadURL issues a presigned GET URL for a stored progress photo.
func (h *ProgressHandler) PhotoDownloadURL(c *gin.Context) {
	objectKey := c.Query("key")
	url, err := h.progressService.PhotoDownloadURL(c.Request.Context(), objectKey)
	if err != nil {
		if errors.Is(err, service.ErrInvalidObjectKey) {
			abortWithError(c, http.StatusBadRequest, "key query parameter is required")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to generate download URL")
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}
