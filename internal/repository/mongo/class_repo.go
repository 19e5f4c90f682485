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

const classCollectionName = "classes"

// mongoClassRepository implements repository.ClassRepository
type mongoClassRepository struct {
	collection *mongo.Collection
}

// NewMongoClassRepository creates a new class repository backed by MongoDB.
func NewMongoClassRepository(db *mongo.Database) repository.ClassRepository {
	return &mongoClassRepository{
		collection: db.Collection(classCollectionName),
	}
}

// Create inserts a new class.
func (r *mongoClassRepository) Create(ctx context.Context, class *domain.Class) (primitive.ObjectID, error) {
	if class.Name == "" || class.Category == "" {
		return primitive.NilObjectID, errors.New("class name and category are required")
	}
	if class.Capacity < 1 {
		return primitive.NilObjectID, errors.New("class capacity must be positive")
	}
	if class.Schedule == nil {
		class.Schedule = []domain.ScheduleSlot{}
	}
	if class.Status == "" {
		class.Status = domain.ClassActive
	}

	class.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	class.CreatedAt = now
	class.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, class)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a class by ID.
func (r *mongoClassRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Class, error) {
	var class domain.Class
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&class)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &class, nil
}

// GetByIDs retrieves all classes whose IDs are in the given list.
func (r *mongoClassRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Class, error) {
	if len(ids) == 0 {
		return []domain.Class{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var classes []domain.Class
	if err = cursor.All(ctx, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// List retrieves classes matching the filter, newest first.
func (r *mongoClassRepository) List(ctx context.Context, filter repository.ClassFilter) ([]domain.Class, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var classes []domain.Class
	if err = cursor.All(ctx, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// Update replaces the mutable fields of an existing class.
func (r *mongoClassRepository) Update(ctx context.Context, class *domain.Class) error {
	if class.ID == primitive.NilObjectID {
		return errors.New("class ID is required for update")
	}

	update := bson.M{
		"$set": bson.M{
			"name":         class.Name,
			"description":  class.Description,
			"instructorId": class.InstructorID,
			"schedule":     class.Schedule,
			"capacity":     class.Capacity,
			"price":        class.Price,
			"category":     class.Category,
			"status":       class.Status,
			"updatedAt":    time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": class.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a class.
func (r *mongoClassRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureClassIndexes creates necessary indexes for the classes collection.
func EnsureClassIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "category", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
