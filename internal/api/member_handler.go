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

type MemberHandler struct {
	memberService service.MemberService
}

func NewMemberHandler(memberService service.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// MemberResponse is a member profile joined with account details.
type MemberResponse struct {
	ID             string                `json:"id"`
	UserID         string                `json:"userId"`
	Name           string                `json:"name,omitempty"`
	Email          string                `json:"email,omitempty"`
	DOB            time.Time             `json:"dob"`
	Gender         string                `json:"gender"`
	MembershipType domain.MembershipType `json:"membershipType"`
	ExpiryDate     time.Time             `json:"expiryDate"`
	Trainer        *TrainerResponse      `json:"trainer,omitempty"`
	IDProof        string                `json:"idProof,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
}

type UpdateMemberRequest struct {
	DOB            string                `json:"dob,omitempty"`
	Gender         string                `json:"gender,omitempty"`
	MembershipType domain.MembershipType `json:"membershipType,omitempty" binding:"omitempty,oneof=monthly yearly"`
	ExpiryDate     string                `json:"expiryDate,omitempty"`
	TrainerID      string                `json:"trainerId,omitempty"`
	IDProof        string                `json:"idProof,omitempty"`
}

// MapMemberToResponse converts a joined member detail to its API shape.
func MapMemberToResponse(d *service.MemberDetail) MemberResponse {
	resp := MemberResponse{
		ID:             d.Member.ID.Hex(),
		UserID:         d.Member.UserID.Hex(),
		DOB:            d.Member.DOB,
		Gender:         d.Member.Gender,
		MembershipType: d.Member.MembershipType,
		ExpiryDate:     d.Member.ExpiryDate,
		IDProof:        d.Member.IDProof,
		CreatedAt:      d.Member.CreatedAt,
	}
	if d.User != nil {
		resp.Name = d.User.Name
		resp.Email = d.User.Email
	}
	if d.Trainer != nil {
		t := MapTrainerToResponse(d.Trainer)
		resp.Trainer = &t
	}
	return resp
}

// List returns every member, or a single member when ?userId= is given.
func (h *MemberHandler) List(c *gin.Context) {
	if rawUserID := c.Query("userId"); rawUserID != "" {
		userID, err := primitive.ObjectIDFromHex(rawUserID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid userId format")
			return
		}
		detail, err := h.memberService.GetByUserID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, service.ErrMemberNotFound) {
				abortWithError(c, http.StatusNotFound, err.Error())
				return
			}
			abortWithError(c, http.StatusInternalServerError, "Failed to fetch member")
			return
		}
		c.JSON(http.StatusOK, gin.H{"member": MapMemberToResponse(detail)})
		return
	}

	details, err := h.memberService.List(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch members")
		return
	}
	members := make([]MemberResponse, 0, len(details))
	for i := range details {
		members = append(members, MapMemberToResponse(&details[i]))
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

// Update applies admin edits, including trainer assignment.
func (h *MemberHandler) Update(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	upd := repository.MemberUpdate{}
	if req.DOB != "" {
		dob, err := parseDate(req.DOB)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid dob date")
			return
		}
		upd.DOB = &dob
	}
	if req.Gender != "" {
		upd.Gender = &req.Gender
	}
	if req.MembershipType != "" {
		upd.MembershipType = &req.MembershipType
	}
	if req.ExpiryDate != "" {
		expiry, err := parseDate(req.ExpiryDate)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid expiryDate date")
			return
		}
		upd.ExpiryDate = &expiry
	}
	if req.TrainerID != "" {
		trainerID, err := primitive.ObjectIDFromHex(req.TrainerID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid trainerId format")
			return
		}
		upd.TrainerID = &trainerID
	}
	if req.IDProof != "" {
		upd.IDProof = &req.IDProof
	}

	detail, err := h.memberService.Update(c.Request.Context(), id, upd)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to update member")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "member": MapMemberToResponse(detail)})
}
