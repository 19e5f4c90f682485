package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InvoiceStatus type for the invoice lifecycle
type InvoiceStatus string

const (
	InvoicePending   InvoiceStatus = "pending"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

// Invoice is a billing record. TotalAmount is always Amount + Tax.
// InvoiceNumber is allocated from an atomic sequence ("INV-000001", ...).
type Invoice struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	InvoiceNumber string              `bson:"invoiceNumber" json:"invoiceNumber"` // Unique
	MemberID      primitive.ObjectID  `bson:"memberId" json:"memberId"`
	Amount        float64             `bson:"amount" json:"amount"`
	Tax           float64             `bson:"tax" json:"tax"`
	TotalAmount   float64             `bson:"totalAmount" json:"totalAmount"`
	Description   string              `bson:"description" json:"description"`
	PaymentID     *primitive.ObjectID `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	Status        InvoiceStatus       `bson:"status" json:"status"`
	DueDate       time.Time           `bson:"dueDate" json:"dueDate"`
	PaidDate      *time.Time          `bson:"paidDate,omitempty" json:"paidDate,omitempty"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt" json:"updatedAt"`
}
