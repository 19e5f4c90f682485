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

type BillingHandler struct {
	billingService service.BillingService
}

func NewBillingHandler(billingService service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

type CreateInvoiceRequest struct {
	MemberID    string  `json:"memberId" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,min=0"`
	Tax         float64 `json:"tax" binding:"min=0"`
	Description string  `json:"description" binding:"required"`
	DueDate     string  `json:"dueDate" binding:"required"`
}

type AttachPaymentRequest struct {
	PaymentID string `json:"paymentId" binding:"required"`
}

type RenewMembershipRequest struct {
	MemberID       string                `json:"memberId" binding:"required"`
	Amount         float64               `json:"amount" binding:"required,min=0"`
	MembershipType domain.MembershipType `json:"membershipType" binding:"required,oneof=monthly yearly"`
}

// CreateInvoice allocates the next invoice number and stores a pending
// invoice with totalAmount = amount + tax.
func (h *BillingHandler) CreateInvoice(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	memberID, err := primitive.ObjectIDFromHex(req.MemberID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid memberId format")
		return
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid dueDate date")
		return
	}

	invoice, err := h.billingService.CreateInvoice(c.Request.Context(), memberID, req.Amount, req.Tax, req.Description, dueDate)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to create invoice")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "invoice": invoice})
}

func (h *BillingHandler) GetInvoice(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	invoice, err := h.billingService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrInvoiceNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch invoice")
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": invoice})
}

func (h *BillingHandler) ListInvoices(c *gin.Context) {
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

	filter := repository.InvoiceFilter{
		MemberID: memberID,
		Status:   domain.InvoiceStatus(c.Query("status")),
		Created:  repository.DateRange{Start: start, End: end},
	}
	invoices, err := h.billingService.ListInvoices(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch invoices")
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

// AttachPayment marks an invoice paid and back-links the settling payment.
func (h *BillingHandler) AttachPayment(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	var req AttachPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	paymentID, err := primitive.ObjectIDFromHex(req.PaymentID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid paymentId format")
		return
	}

	invoice, err := h.billingService.AttachPayment(c.Request.Context(), id, paymentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvoiceNotFound), errors.Is(err, service.ErrPaymentNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update invoice")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "invoice": invoice})
}

// PaymentHistory lists payments with a settlement summary.
func (h *BillingHandler) PaymentHistory(c *gin.Context) {
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

	filter := repository.PaymentFilter{
		MemberID: memberID,
		Status:   domain.PaymentStatus(c.Query("status")),
		Date:     repository.DateRange{Start: start, End: end},
	}
	history, err := h.billingService.PaymentHistory(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch payment history")
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": history.Payments, "summary": history.Summary})
}

// RenewMembership runs the renewal sequence and returns the payment with its
// invoice plus the refreshed membership dates.
func (h *BillingHandler) RenewMembership(c *gin.Context) {
	var req RenewMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	memberID, err := primitive.ObjectIDFromHex(req.MemberID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid memberId format")
		return
	}

	result, err := h.billingService.RenewMembership(c.Request.Context(), memberID, req.MembershipType, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMemberNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidMembershipType):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Payment failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"payment": result.Payment,
		"invoice": result.Invoice,
		"member": gin.H{
			"membershipType": result.Member.MembershipType,
			"expiryDate":     result.Member.ExpiryDate.Format(time.RFC3339),
		},
	})
}
