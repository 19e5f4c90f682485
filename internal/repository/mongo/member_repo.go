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

const memberCollectionName = "members"

// mongoMemberRepository implements repository.MemberRepository
type mongoMemberRepository struct {
	collection *mongo.Collection
}

// NewMongoMemberRepository creates a new member repository backed by MongoDB.
func NewMongoMemberRepository(db *mongo.Database) repository.MemberRepository {
	return &mongoMemberRepository{
		collection: db.Collection(memberCollectionName),
	}
}

// Create inserts a new member profile.
func (r *mongoMemberRepository) Create(ctx context.Context, member *domain.Member) (primitive.ObjectID, error) {
	if member.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("member user ID is required")
	}

	member.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	member.CreatedAt = now
	member.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, member)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a member by ID.
func (r *mongoMemberRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Member, error) {
	var member domain.Member
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

// GetByIDs retrieves all members whose IDs are in the given list.
func (r *mongoMemberRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Member, error) {
	if len(ids) == 0 {
		return []domain.Member{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var members []domain.Member
	if err = cursor.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// GetByUserID retrieves the member profile belonging to a user account.
func (r *mongoMemberRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Member, error) {
	var member domain.Member
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

// GetAll retrieves every member profile.
func (r *mongoMemberRepository) GetAll(ctx context.Context) ([]domain.Member, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var members []domain.Member
	if err = cursor.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// Update applies the non-nil fields of upd and returns the updated document.
func (r *mongoMemberRepository) Update(ctx context.Context, id primitive.ObjectID, upd repository.MemberUpdate) (*domain.Member, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.DOB != nil {
		set["dob"] = *upd.DOB
	}
	if upd.Gender != nil {
		set["gender"] = *upd.Gender
	}
	if upd.MembershipType != nil {
		set["membershipType"] = *upd.MembershipType
	}
	if upd.ExpiryDate != nil {
		set["expiryDate"] = *upd.ExpiryDate
	}
	if upd.TrainerID != nil {
		set["trainerId"] = *upd.TrainerID
	}
	if upd.IDProof != nil {
		set["idProof"] = *upd.IDProof
	}

	var member domain.Member
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

// SetMembership updates the membership type and expiry date of a member.
// Called by renewal.
func (r *mongoMemberRepository) SetMembership(ctx context.Context, id primitive.ObjectID, mt domain.MembershipType, expiry time.Time) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"membershipType": mt,
			"expiryDate":     expiry,
			"updatedAt":      time.Now().UTC(),
		},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CountAll counts every member profile.
func (r *mongoMemberRepository) CountAll(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// CountActive counts members whose membership has not yet expired.
func (r *mongoMemberRepository) CountActive(ctx context.Context, now time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"expiryDate": bson.M{"$gte": now}})
}

// CountExpired counts members whose membership has expired.
func (r *mongoMemberRepository) CountExpired(ctx context.Context, now time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"expiryDate": bson.M{"$lt": now}})
}

// EnsureMemberIndexes creates necessary indexes for the members collection.
func EnsureMemberIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "expiryDate", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
