package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MembershipType is the billing cadence of a membership.
type MembershipType string

const (
	MembershipMonthly MembershipType = "monthly"
	MembershipYearly  MembershipType = "yearly"
)

// Member holds the gym-specific profile of a User with role "member".
// Renewal mutates MembershipType and ExpiryDate; admins may assign a trainer.
type Member struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID  `bson:"userId" json:"userId"`
	DOB            time.Time           `bson:"dob" json:"dob"`
	Gender         string              `bson:"gender" json:"gender"`
	MembershipType MembershipType      `bson:"membershipType" json:"membershipType"`
	ExpiryDate     time.Time           `bson:"expiryDate" json:"expiryDate"`
	TrainerID      *primitive.ObjectID `bson:"trainerId,omitempty" json:"trainerId,omitempty"`
	IDProof        string              `bson:"idProof" json:"idProof"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// IsActive reports whether the membership has not yet expired at the given time.
func (m *Member) IsActive(now time.Time) bool {
	return m.ExpiryDate.After(now)
}
