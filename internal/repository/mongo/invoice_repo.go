package mongo

import (
	"alcyxob/gym-app/internal/domain"
	"alcyxob/gym-app/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	invoiceCollectionName = "invoices"
	counterCollectionName = "counters"
	invoiceCounterID      = "invoiceNumber"
)

// mongoInvoiceRepository implements repository.InvoiceRepository
type mongoInvoiceRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

// NewMongoInvoiceRepository creates a new invoice repository backed by MongoDB.
func NewMongoInvoiceRepository(db *mongo.Database) repository.InvoiceRepository {
	return &mongoInvoiceRepository{
		collection: db.Collection(invoiceCollectionName),
		counters:   db.Collection(counterCollectionName),
	}
}

// counterDoc is the sequence document backing invoice numbering.
type counterDoc struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

// NextInvoiceNumber atomically allocates the next invoice number via an
// upserted $inc on the counters collection. Concurrent callers get distinct,
// gap-free numbers.
func (r *mongoInvoiceRepository) NextInvoiceNumber(ctx context.Context) (string, error) {
	var doc counterDoc
	err := r.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": invoiceCounterID},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%06d", doc.Seq), nil
}

// Create inserts a new invoice.
func (r *mongoInvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) (primitive.ObjectID, error) {
	if invoice.InvoiceNumber == "" || invoice.MemberID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("invoice number and member ID are required")
	}
	// TotalAmount must always equal Amount + Tax at creation time.
	invoice.TotalAmount = invoice.Amount + invoice.Tax
	if invoice.Status == "" {
		invoice.Status = domain.InvoicePending
	}

	invoice.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	invoice.CreatedAt = now
	invoice.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, invoice)
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

// GetByID retrieves an invoice by ID.
func (r *mongoInvoiceRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&invoice)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// List retrieves invoices matching the filter, newest first.
func (r *mongoInvoiceRepository) List(ctx context.Context, filter repository.InvoiceFilter) ([]domain.Invoice, error) {
	query := bson.M{}
	if filter.MemberID != nil {
		query["memberId"] = *filter.MemberID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Created.Start != nil || filter.Created.End != nil {
		query["createdAt"] = rangeFilter(filter.Created.Start, filter.Created.End)
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var invoices []domain.Invoice
	if err = cursor.All(ctx, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// MarkPaid attaches the payment, flips the status to paid and stamps the paid
// date, returning the updated invoice.
func (r *mongoInvoiceRepository) MarkPaid(ctx context.Context, id, paymentID primitive.ObjectID, paidAt time.Time) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"paymentId": paymentID,
			"status":    domain.InvoicePaid,
			"paidDate":  paidAt,
			"updatedAt": time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&invoice)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// SetStatus updates only the invoice status and returns the updated document.
func (r *mongoInvoiceRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status domain.InvoiceStatus) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&invoice)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// EnsureInvoiceIndexes creates necessary indexes for the invoices collection.
func EnsureInvoiceIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "invoiceNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "memberId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
