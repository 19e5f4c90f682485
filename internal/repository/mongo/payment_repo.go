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

const paymentCollectionName = "payments"

// mongoPaymentRepository implements repository.PaymentRepository
type mongoPaymentRepository struct {
	collection *mongo.Collection
}

// NewMongoPaymentRepository creates a new payment repository backed by MongoDB.
func NewMongoPaymentRepository(db *mongo.Database) repository.PaymentRepository {
	return &mongoPaymentRepository{
		collection: db.Collection(paymentCollectionName),
	}
}

// Create inserts a new payment.
func (r *mongoPaymentRepository) Create(ctx context.Context, payment *domain.Payment) (primitive.ObjectID, error) {
	if payment.MemberID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("payment member ID is required")
	}
	if payment.Method == "" || payment.Status == "" {
		return primitive.NilObjectID, errors.New("payment method and status are required")
	}
	if payment.Date.IsZero() {
		payment.Date = time.Now().UTC()
	}

	payment.ID = primitive.NewObjectID()

	result, err := r.collection.InsertOne(ctx, payment)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a payment by ID.
func (r *mongoPaymentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&payment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// List retrieves payments matching the filter, newest first.
func (r *mongoPaymentRepository) List(ctx context.Context, filter repository.PaymentFilter) ([]domain.Payment, error) {
	query := bson.M{}
	if filter.MemberID != nil {
		query["memberId"] = *filter.MemberID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Date.Start != nil || filter.Date.End != nil {
		query["date"] = rangeFilter(filter.Date.Start, filter.Date.End)
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var payments []domain.Payment
	if err = cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// SetInvoiceID back-links a payment to its invoice.
func (r *mongoPaymentRepository) SetInvoiceID(ctx context.Context, id, invoiceID primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"invoiceId": invoiceID},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListSuccessfulSince retrieves successful payments dated on or after the
// given time; a nil since returns all successful payments.
func (r *mongoPaymentRepository) ListSuccessfulSince(ctx context.Context, since *time.Time) ([]domain.Payment, error) {
	query := bson.M{"status": domain.PaymentSuccess}
	if since != nil {
		query["date"] = bson.M{"$gte": *since}
	}

	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var payments []domain.Payment
	if err = cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// EnsurePaymentIndexes creates necessary indexes for the payments collection.
func EnsurePaymentIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "memberId", Value: 1}, {Key: "date", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "date", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
