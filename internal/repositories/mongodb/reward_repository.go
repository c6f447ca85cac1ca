package mongodb

import (
	"context"
	"time"

	"github.com/luckywheel/spin-backend/internal/models"
	"github.com/luckywheel/spin-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure RewardRepository implements the interface
var _ repositories.RewardRepository = (*RewardRepository)(nil)

// RewardRepository handles MongoDB operations for Reward
type RewardRepository struct {
	collection *mongo.Collection
}

// NewRewardRepository creates a new RewardRepository
func NewRewardRepository(db *mongo.Database) *RewardRepository {
	return &RewardRepository{
		collection: db.Collection("rewards"),
	}
}

// Create inserts a new reward
func (r *RewardRepository) Create(ctx context.Context, reward *models.Reward) error {
	reward.Touch(time.Now())
	res, err := r.collection.InsertOne(ctx, reward)
	if err != nil {
		return err
	}
	reward.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a reward by ID
func (r *RewardRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Reward, error) {
	var reward models.Reward
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&reward)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &reward, nil
}

// FindByLocationID retrieves all rewards of a location ordered by ID. The
// ascending order is load-bearing: the weighted selector tries candidates in
// exactly this order.
func (r *RewardRepository) FindByLocationID(ctx context.Context, locationID primitive.ObjectID) ([]*models.Reward, error) {
	var rewards []*models.Reward
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"locationId": locationID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &rewards); err != nil {
		return nil, err
	}
	if rewards == nil {
		rewards = []*models.Reward{}
	}
	return rewards, nil
}

// Update updates an existing reward unconditionally
func (r *RewardRepository) Update(ctx context.Context, reward *models.Reward) error {
	reward.UpdatedAt = time.Now()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": reward.ID}, reward)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete deletes a reward by ID
func (r *RewardRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// UpdateVersioned replaces the reward only if the stored version still
// matches. The allocator relies on this to never over-grant a finite pool.
func (r *RewardRepository) UpdateVersioned(ctx context.Context, reward *models.Reward) error {
	expected := reward.Version
	reward.Version = expected + 1
	reward.UpdatedAt = time.Now()
	filter := bson.M{"_id": reward.ID, "version": expected}
	res, err := r.collection.ReplaceOne(ctx, filter, reward)
	if err != nil {
		reward.Version = expected
		return err
	}
	if res.MatchedCount == 0 {
		reward.Version = expected
		return repositories.ErrVersionConflict
	}
	return nil
}

// ExpireBefore marks active rewards whose validity ended before the cutoff
func (r *RewardRepository) ExpireBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	filter := bson.M{
		"status":     models.StatusActive,
		"validUntil": bson.M{"$lte": cutoff},
	}
	update := bson.M{"$set": bson.M{"status": models.StatusExpired, "updatedAt": time.Now()}}
	res, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
