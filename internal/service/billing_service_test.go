package service

import (
	"alcyxob/gym-app/internal/domain"
	"alcyxob/gym-app/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newBillingFixture() (BillingService, *fakeInvoiceRepo, *fakePaymentRepo, *fakeMemberRepo, primitive.ObjectID) {
	invoiceRepo := newFakeInvoiceRepo()
	paymentRepo := newFakePaymentRepo()
	memberRepo := newFakeMemberRepo()

	memberID, _ := memberRepo.Create(context.Background(), &domain.Member{
		UserID:         primitive.NewObjectID(),
		MembershipType: domain.MembershipMonthly,
		ExpiryDate:     time.Now().AddDate(0, 0, 3),
	})

	svc := NewBillingService(invoiceRepo, paymentRepo, memberRepo)
	return svc, invoiceRepo, paymentRepo, memberRepo, memberID
}

func TestCreateInvoice_NumbersAndTotals(t *testing.T) {
	svc, _, _, _, memberID := newBillingFixture()

	first, err := svc.CreateInvoice(context.Background(), memberID, 100, 18, "Personal training", time.Now().AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Equal(t, "INV-000001", first.InvoiceNumber)
	assert.Equal(t, float64(118), first.TotalAmount)
	assert.Equal(t, domain.InvoicePending, first.Status)

	second, err := svc.CreateInvoice(context.Background(), memberID, 50, 0, "Locker rental", time.Now().AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Equal(t, "INV-000002", second.InvoiceNumber)
}

func TestCreateInvoice_UnknownMember(t *testing.T) {
	svc, _, _, _, _ := newBillingFixture()

	_, err := svc.CreateInvoice(context.Background(), primitive.NewObjectID(), 100, 0, "whatever", time.Now())
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestAttachPayment_MarksInvoicePaidAndBacklinks(t *testing.T) {
	svc, _, paymentRepo, _, memberID := newBillingFixture()

	invoice, err := svc.CreateInvoice(context.Background(), memberID, 200, 0, "Monthly dues", time.Now())
	require.NoError(t, err)

	paymentID, err := paymentRepo.Create(context.Background(), &domain.Payment{
		MemberID: memberID,
		Amount:   200,
		Date:     time.Now(),
		Method:   domain.MethodCard,
		Status:   domain.PaymentSuccess,
	})
	require.NoError(t, err)

	updated, err := svc.AttachPayment(context.Background(), invoice.ID, paymentID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoicePaid, updated.Status)
	require.NotNil(t, updated.PaymentID)
	assert.Equal(t, paymentID, *updated.PaymentID)
	require.NotNil(t, updated.PaidDate)

	payment, err := paymentRepo.GetByID(context.Background(), paymentID)
	require.NoError(t, err)
	require.NotNil(t, payment.InvoiceID)
	assert.Equal(t, invoice.ID, *payment.InvoiceID)
}

func TestRenewMembership_MonthlySequence(t *testing.T) {
	svc, _, _, memberRepo, memberID := newBillingFixture()

	before := time.Now()
	result, err := svc.RenewMembership(context.Background(), memberID, domain.MembershipMonthly, 1000)
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentSuccess, result.Payment.Status)
	assert.Equal(t, domain.MethodFake, result.Payment.Method)
	assert.NotEmpty(t, result.Payment.TransactionID)

	assert.Equal(t, domain.InvoicePaid, result.Invoice.Status)
	assert.Equal(t, float64(0), result.Invoice.Tax)
	assert.Equal(t, float64(1000), result.Invoice.TotalAmount)
	assert.Equal(t, "Membership renewal - monthly", result.Invoice.Description)
	require.NotNil(t, result.Invoice.PaymentID)
	assert.Equal(t, result.Payment.ID, *result.Invoice.PaymentID)

	member, err := memberRepo.GetByID(context.Background(), memberID)
	require.NoError(t, err)
	assert.Equal(t, domain.MembershipMonthly, member.MembershipType)
	expectedExpiry := before.AddDate(0, 1, 0)
	assert.WithinDuration(t, expectedExpiry, member.ExpiryDate, time.Minute)
}

func TestRenewMembership_YearlyExtendsOneYear(t *testing.T) {
	svc, _, _, memberRepo, memberID := newBillingFixture()

	before := time.Now()
	result, err := svc.RenewMembership(context.Background(), memberID, domain.MembershipYearly, 10000)
	require.NoError(t, err)
	assert.Equal(t, "Membership renewal - yearly", result.Invoice.Description)

	member, err := memberRepo.GetByID(context.Background(), memberID)
	require.NoError(t, err)
	assert.Equal(t, domain.MembershipYearly, member.MembershipType)
	assert.WithinDuration(t, before.AddDate(1, 0, 0), member.ExpiryDate, time.Minute)
}

func TestRenewMembership_InvalidType(t *testing.T) {
	svc, _, _, _, memberID := newBillingFixture()

	_, err := svc.RenewMembership(context.Background(), memberID, "weekly", 100)
	assert.ErrorIs(t, err, ErrInvalidMembershipType)
}

func TestRenewMembership_UnknownMember(t *testing.T) {
	svc, _, _, _, _ := newBillingFixture()

	_, err := svc.RenewMembership(context.Background(), primitive.NewObjectID(), domain.MembershipMonthly, 1000)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestPaymentHistory_Summary(t *testing.T) {
	svc, _, paymentRepo, _, memberID := newBillingFixture()

	ctx := context.Background()
	amounts := []struct {
		amount float64
		status domain.PaymentStatus
	}{
		{1000, domain.PaymentSuccess},
		{500, domain.PaymentSuccess},
		{250, domain.PaymentFailed},
		{75, domain.PaymentPending},
	}
	for _, a := range amounts {
		_, err := paymentRepo.Create(ctx, &domain.Payment{
			MemberID: memberID,
			Amount:   a.amount,
			Date:     time.Now(),
			Method:   domain.MethodUPI,
			Status:   a.status,
		})
		require.NoError(t, err)
	}

	history, err := svc.PaymentHistory(ctx, repository.PaymentFilter{MemberID: &memberID})
	require.NoError(t, err)
	assert.Len(t, history.Payments, 4)
	assert.Equal(t, float64(1500), history.Summary.Total)
	assert.Equal(t, 2, history.Summary.TotalPaid)
	assert.Equal(t, 1, history.Summary.TotalFail)
}
