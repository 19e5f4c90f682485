package service

import (
	"alcyxob/gym-app/internal/domain"
	"alcyxob/gym-app/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvoiceNotFound       = errors.New("invoice not found")
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrInvalidMembershipType = errors.New("membership type must be monthly or yearly")
)

// PaymentSummary aggregates a payment listing.
type PaymentSummary struct {
	Total     float64 `json:"total"`
	TotalPaid int     `json:"totalPaid"`
	TotalFail int     `json:"totalFailed"`
}

// PaymentHistory is a filtered payment listing with its summary.
type PaymentHistory struct {
	Payments []domain.Payment
	Summary  PaymentSummary
}

// RenewalResult carries the artifacts of a membership renewal.
type RenewalResult struct {
	Payment *domain.Payment
	Invoice *domain.Invoice
	Member  *domain.Member
}

type BillingService interface {
	CreateInvoice(ctx context.Context, memberID primitive.ObjectID, amount, tax float64, description string, dueDate time.Time) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, id primitive.ObjectID) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, filter repository.InvoiceFilter) ([]domain.Invoice, error)
	// AttachPayment marks an invoice paid and back-links the payment.
	AttachPayment(ctx context.Context, invoiceID, paymentID primitive.ObjectID) (*domain.Invoice, error)

	PaymentHistory(ctx context.Context, filter repository.PaymentFilter) (*PaymentHistory, error)

	// RenewMembership runs the renewal sequence: pending invoice, simulated
	// gateway payment, invoice marked paid, membership extended one month or
	// one year from now.
	RenewMembership(ctx context.Context, memberID primitive.ObjectID, mt domain.MembershipType, amount float64) (*RenewalResult, error)
}

type billingService struct {
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	memberRepo  repository.MemberRepository
}

func NewBillingService(invoiceRepo repository.InvoiceRepository, paymentRepo repository.PaymentRepository, memberRepo repository.MemberRepository) BillingService {
	return &billingService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		memberRepo:  memberRepo,
	}
}

func (s *billingService) CreateInvoice(ctx context.Context, memberID primitive.ObjectID, amount, tax float64, description string, dueDate time.Time) (*domain.Invoice, error) {
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	number, err := s.invoiceRepo.NextInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}

	invoice := &domain.Invoice{
		InvoiceNumber: number,
		MemberID:      memberID,
		Amount:        amount,
		Tax:           tax,
		TotalAmount:   amount + tax,
		Description:   description,
		Status:        domain.InvoicePending,
		DueDate:       dueDate,
	}
	id, err := s.invoiceRepo.Create(ctx, invoice)
	if err != nil {
		return nil, err
	}
	invoice.ID = id
	return invoice, nil
}

func (s *billingService) GetInvoice(ctx context.Context, id primitive.ObjectID) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return invoice, nil
}

func (s *billingService) ListInvoices(ctx context.Context, filter repository.InvoiceFilter) ([]domain.Invoice, error) {
	return s.invoiceRepo.List(ctx, filter)
}

func (s *billingService) AttachPayment(ctx context.Context, invoiceID, paymentID primitive.ObjectID) (*domain.Invoice, error) {
	if _, err := s.paymentRepo.GetByID(ctx, paymentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	invoice, err := s.invoiceRepo.MarkPaid(ctx, invoiceID, paymentID, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}

	if err := s.paymentRepo.SetInvoiceID(ctx, paymentID, invoiceID); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *billingService) PaymentHistory(ctx context.Context, filter repository.PaymentFilter) (*PaymentHistory, error) {
	payments, err := s.paymentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	var summary PaymentSummary
	for _, p := range payments {
		switch p.Status {
		case domain.PaymentSuccess:
			summary.Total += p.Amount
			summary.TotalPaid++
		case domain.PaymentFailed:
			summary.TotalFail++
		}
	}
	return &PaymentHistory{Payments: payments, Summary: summary}, nil
}

func (s *billingService) RenewMembership(ctx context.Context, memberID primitive.ObjectID, mt domain.MembershipType, amount float64) (*RenewalResult, error) {
	if mt != domain.MembershipMonthly && mt != domain.MembershipYearly {
		return nil, ErrInvalidMembershipType
	}

	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	now := time.Now()

	number, err := s.invoiceRepo.NextInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}
	invoice := &domain.Invoice{
		InvoiceNumber: number,
		MemberID:      member.ID,
		Amount:        amount,
		Tax:           0,
		TotalAmount:   amount,
		Description:   fmt.Sprintf("Membership renewal - %s", mt),
		Status:        domain.InvoicePending,
		DueDate:       now,
	}
	invoiceID, err := s.invoiceRepo.Create(ctx, invoice)
	if err != nil {
		return nil, err
	}
	invoice.ID = invoiceID

	// Simulated gateway: the payment always succeeds.
	payment := &domain.Payment{
		MemberID:      member.ID,
		Amount:        amount,
		Date:          now,
		Method:        domain.MethodFake,
		Status:        domain.PaymentSuccess,
		InvoiceID:     &invoiceID,
		TransactionID: uuid.NewString(),
		Description:   invoice.Description,
	}
	paymentID, err := s.paymentRepo.Create(ctx, payment)
	if err != nil {
		return nil, err
	}
	payment.ID = paymentID

	invoice, err = s.invoiceRepo.MarkPaid(ctx, invoiceID, paymentID, now)
	if err != nil {
		return nil, err
	}

	expiry := now.AddDate(0, 1, 0)
	if mt == domain.MembershipYearly {
		expiry = now.AddDate(1, 0, 0)
	}
	if err := s.memberRepo.SetMembership(ctx, member.ID, mt, expiry); err != nil {
		return nil, err
	}
	member.MembershipType = mt
	member.ExpiryDate = expiry

	log.WithFields(log.Fields{
		"memberId": member.ID.Hex(),
		"invoice":  invoice.InvoiceNumber,
		"type":     mt,
	}).Info("membership renewed")

	return &RenewalResult{Payment: payment, Invoice: invoice, Member: member}, nil
}
