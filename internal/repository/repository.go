package repository

import (
	"alcyxob/gym-app/internal/domain"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicateKey = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// DateRange bounds a query to [Start, End]; either side may be nil.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error)
	GetByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
}

// MemberUpdate carries the mutable member fields; nil means "leave as is".
type MemberUpdate struct {
	DOB            *time.Time
	Gender         *string
	MembershipType *domain.MembershipType
	ExpiryDate     *time.Time
	TrainerID      *primitive.ObjectID
	IDProof        *string
}

// MemberRepository defines the interface for interacting with member profiles.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Member, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Member, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Member, error)
	GetAll(ctx context.Context) ([]domain.Member, error)
	Update(ctx context.Context, id primitive.ObjectID, upd MemberUpdate) (*domain.Member, error)
	SetMembership(ctx context.Context, id primitive.ObjectID, mt domain.MembershipType, expiry time.Time) error
	CountAll(ctx context.Context) (int64, error)
	CountActive(ctx context.Context, now time.Time) (int64, error)
	CountExpired(ctx context.Context, now time.Time) (int64, error)
}

// TrainerRepository defines the interface for interacting with trainer profiles.
type TrainerRepository interface {
	Create(ctx context.Context, trainer *domain.Trainer) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Trainer, error)
	GetAll(ctx context.Context) ([]domain.Trainer, error)
}

// ClassFilter narrows class listings.
type ClassFilter struct {
	Category string
	Status   domain.ClassStatus
}

// ClassRepository defines the interface for interacting with class data.
type ClassRepository interface {
	Create(ctx context.Context, class *domain.Class) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Class, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Class, error)
	List(ctx context.Context, filter ClassFilter) ([]domain.Class, error)
	Update(ctx context.Context, class *domain.Class) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// BookingFilter narrows booking listings. Date matches the whole calendar day.
type BookingFilter struct {
	MemberID *primitive.ObjectID
	ClassID  *primitive.ObjectID
	Date     *time.Time
	Status   domain.BookingStatus
}

// BookingRepository defines the interface for interacting with bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Booking, error)
	List(ctx context.Context, filter BookingFilter) ([]domain.Booking, error)
	// CountSeats counts confirmed/completed bookings for the class on the date.
	CountSeats(ctx context.Context, classID primitive.ObjectID, date time.Time) (int64, error)
	// FindConfirmed looks up the member's confirmed booking for (classId, date), if any.
	FindConfirmed(ctx context.Context, memberID, classID primitive.ObjectID, date time.Time) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.BookingStatus, cancelledAt *time.Time, reason string) (*domain.Booking, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountActiveSince(ctx context.Context, since time.Time) (int64, error)
}

// InvoiceFilter narrows invoice listings.
type InvoiceFilter struct {
	MemberID *primitive.ObjectID
	Status   domain.InvoiceStatus
	Created  DateRange
}

// InvoiceRepository defines the interface for interacting with invoices.
type InvoiceRepository interface {
	// NextInvoiceNumber atomically allocates the next "INV-%06d" number.
	NextInvoiceNumber(ctx context.Context) (string, error)
	Create(ctx context.Context, invoice *domain.Invoice) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Invoice, error)
	List(ctx context.Context, filter InvoiceFilter) ([]domain.Invoice, error)
	MarkPaid(ctx context.Context, id, paymentID primitive.ObjectID, paidAt time.Time) (*domain.Invoice, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status domain.InvoiceStatus) (*domain.Invoice, error)
}

// PaymentFilter narrows payment listings.
type PaymentFilter struct {
	MemberID *primitive.ObjectID
	Status   domain.PaymentStatus
	Date     DateRange
}

// PaymentRepository defines the interface for interacting with payments.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Payment, error)
	List(ctx context.Context, filter PaymentFilter) ([]domain.Payment, error)
	SetInvoiceID(ctx context.Context, id, invoiceID primitive.ObjectID) error
	ListSuccessfulSince(ctx context.Context, since *time.Time) ([]domain.Payment, error)
}

// ProgressFilter narrows progress listings.
type ProgressFilter struct {
	MemberID *primitive.ObjectID
	Date     DateRange
}

// ProgressRepository defines the interface for interacting with progress records.
type ProgressRepository interface {
	Create(ctx context.Context, progress *domain.Progress) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Progress, error)
	List(ctx context.Context, filter ProgressFilter) ([]domain.Progress, error)
	Update(ctx context.Context, progress *domain.Progress) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// PlanFilter narrows workout plan listings.
type PlanFilter struct {
	TrainerID *primitive.ObjectID
	MemberID  *primitive.ObjectID
	Status    domain.PlanStatus
}

// WorkoutPlanRepository defines the interface for interacting with workout plans.
type WorkoutPlanRepository interface {
	Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error)
	List(ctx context.Context, filter PlanFilter) ([]domain.WorkoutPlan, error)
	Update(ctx context.Context, plan *domain.WorkoutPlan) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// SessionFilter narrows workout session listings.
type SessionFilter struct {
	MemberID  *primitive.ObjectID
	Date      DateRange
	Completed *bool
}

// WorkoutSessionRepository defines the interface for interacting with workout sessions.
type WorkoutSessionRepository interface {
	Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error)
	List(ctx context.Context, filter SessionFilter) ([]domain.WorkoutSession, error)
	Update(ctx context.Context, session *domain.WorkoutSession) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// AttendanceRepository defines the interface for the append-only attendance log.
type AttendanceRepository interface {
	Create(ctx context.Context, att *domain.Attendance) (primitive.ObjectID, error)
	ListByMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.Attendance, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	CountBetween(ctx context.Context, from, to time.Time) (int64, error)
}

// ExerciseFilter narrows exercise catalog listings.
type ExerciseFilter struct {
	MuscleGroup string
	Equipment   string
	Difficulty  domain.Difficulty
	Search      string // case-insensitive match over name and description
}

// ExerciseRepository defines the interface for interacting with the exercise catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error)
	List(ctx context.Context, filter ExerciseFilter) ([]domain.Exercise, error)
	Count(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, exercises []domain.Exercise) ([]domain.Exercise, error)
}
