package mongo

import (
	"alcyxob/gym-app/internal/domain"
	"alcyxob/gym-app/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const bookingCollectionName = "bookings"

// mongoBookingRepository implements repository.BookingRepository
type mongoBookingRepository struct {
	collection *mongo.Collection
}

// NewMongoBookingRepository creates a new booking repository backed by MongoDB.
func NewMongoBookingRepository(db *mongo.Database) repository.BookingRepository {
	return &mongoBookingRepository{
		collection: db.Collection(bookingCollectionName),
	}
}

// Create inserts a new booking. A duplicate-key error from the partial
// unique index (one confirmed booking per member/class/date) surfaces as
// repository.ErrDuplicateKey.
func (r *mongoBookingRepository) Create(ctx context.Context, booking *domain.Booking) (primitive.ObjectID, error) {
	if booking.MemberID == primitive.NilObjectID || booking.ClassID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("booking member ID and class ID are required")
	}
	if booking.Status == "" {
		booking.Status = domain.BookingConfirmed
	}

	booking.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a booking by ID.
func (r *mongoBookingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Booking, error) {
	var booking domain.Booking
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// List retrieves bookings matching the filter, ordered by date ascending.
// A date filter matches the whole calendar day.
func (r *mongoBookingRepository) List(ctx context.Context, filter repository.BookingFilter) ([]domain.Booking, error) {
	query := bson.M{}
	if filter.MemberID != nil {
		query["memberId"] = *filter.MemberID
	}
	if filter.ClassID != nil {
		query["classId"] = *filter.ClassID
	}
	if filter.Date != nil {
		start, end := dayBounds(*filter.Date)
		query["date"] = bson.M{"$gte": start, "$lte": end}
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []domain.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CountSeats counts confirmed/completed bookings for the class on the date.
func (r *mongoBookingRepository) CountSeats(ctx context.Context, classID primitive.ObjectID, date time.Time) (int64, error) {
	start, end := dayBounds(date)
	return r.collection.CountDocuments(ctx, bson.M{
		"classId": classID,
		"date":    bson.M{"$gte": start, "$lte": end},
		"status":  bson.M{"$in": bson.A{domain.BookingConfirmed, domain.BookingCompleted}},
	})
}

// FindConfirmed looks up the member's confirmed booking for (classId, date), if any.
func (r *mongoBookingRepository) FindConfirmed(ctx context.Context, memberID, classID primitive.ObjectID, date time.Time) (*domain.Booking, error) {
	start, end := dayBounds(date)
	var booking domain.Booking
	err := r.collection.FindOne(ctx, bson.M{
		"memberId": memberID,
		"classId":  classID,
		"date":     bson.M{"$gte": start, "$lte": end},
		"status":   domain.BookingConfirmed,
	}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// UpdateStatus sets the booking status (and cancellation fields when given)
// and returns the updated document. Transitions are not validated against the
// current state; cancelling an already-cancelled booking is accepted.
func (r *mongoBookingRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.BookingStatus, cancelledAt *time.Time, reason string) (*domain.Booking, error) {
	set := bson.M{
		"status":    status,
		"updatedAt": time.Now().UTC(),
	}
	if cancelledAt != nil {
		set["cancelledAt"] = *cancelledAt
	}
	if reason != "" {
		set["cancellationReason"] = reason
	}

	var booking domain.Booking
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// Delete removes a booking.
func (r *mongoBookingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CountActiveSince counts confirmed/completed bookings dated on or after the given time.
func (r *mongoBookingRepository) CountActiveSince(ctx context.Context, since time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"date":   bson.M{"$gte": since},
		"status": bson.M{"$in": bson.A{domain.BookingConfirmed, domain.BookingCompleted}},
	})
}

// EnsureBookingIndexes creates necessary indexes for the bookings collection.
// The partial unique index backs the one-confirmed-booking-per-member/class/date
// invariant at the store level.
func EnsureBookingIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "memberId", Value: 1}, {Key: "date", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "classId", Value: 1}, {Key: "date", Value: 1}},
		},
		{
			Keys: bson.D{
				{Key: "memberId", Value: 1},
				{Key: "classId", Value: 1},
				{Key: "date", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": domain.BookingConfirmed}),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
