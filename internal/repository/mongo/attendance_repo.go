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

const attendanceCollectionName = "attendance"

// mongoAttendanceRepository implements repository.AttendanceRepository
type mongoAttendanceRepository struct {
	collection *mongo.Collection
}

// NewMongoAttendanceRepository creates a new attendance repository backed by MongoDB.
func NewMongoAttendanceRepository(db *mongo.Database) repository.AttendanceRepository {
	return &mongoAttendanceRepository{
		collection: db.Collection(attendanceCollectionName),
	}
}

// Create appends a check-in record. The log is never updated or deleted.
func (r *mongoAttendanceRepository) Create(ctx context.Context, att *domain.Attendance) (primitive.ObjectID, error) {
	if att.MemberID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("attendance member ID is required")
	}

	att.ID = primitive.NewObjectID()

	result, err := r.collection.InsertOne(ctx, att)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// ListByMember retrieves a member's check-ins, newest first.
func (r *mongoAttendanceRepository) ListByMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.Attendance, error) {
	findOptions := options.Find().SetSort(bson.D{
		{Key: "date", Value: -1},
		{Key: "time", Value: -1},
	})

	cursor, err := r.collection.Find(ctx, bson.M{"memberId": memberID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []domain.Attendance
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CountSince counts check-ins dated on or after the given time.
func (r *mongoAttendanceRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"date": bson.M{"$gte": since}})
}

// CountBetween counts check-ins within [from, to].
func (r *mongoAttendanceRepository) CountBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"date": bson.M{"$gte": from, "$lte": to},
	})
}

// EnsureAttendanceIndexes creates necessary indexes for the attendance collection.
func EnsureAttendanceIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "memberId", Value: 1}, {Key: "date", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "date", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
