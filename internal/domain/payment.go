package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentStatus type for settlement outcome
type PaymentStatus string

const (
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
	PaymentPending PaymentStatus = "pending"
)

// PaymentMethod type for how a payment was made.
// "fake" is the placeholder used by the simulated renewal gateway.
type PaymentMethod string

const (
	MethodOnline PaymentMethod = "online"
	MethodCash   PaymentMethod = "cash"
	MethodCard   PaymentMethod = "card"
	MethodUPI    PaymentMethod = "upi"
	MethodWallet PaymentMethod = "wallet"
	MethodFake   PaymentMethod = "fake"
)

// Payment is the settlement record corresponding to an Invoice.
type Payment struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	MemberID      primitive.ObjectID  `bson:"memberId" json:"memberId"`
	Amount        float64             `bson:"amount" json:"amount"`
	Date          time.Time           `bson:"date" json:"date"`
	Method        PaymentMethod       `bson:"method" json:"method"`
	Status        PaymentStatus       `bson:"status" json:"status"`
	InvoiceID     *primitive.ObjectID `bson:"invoiceId,omitempty" json:"invoiceId,omitempty"`
	TransactionID string              `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	Description   string              `bson:"description,omitempty" json:"description,omitempty"`
}
