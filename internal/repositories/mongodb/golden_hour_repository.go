package mongodb

import (
	"context"
	"time"

	"github.com/luckywheel/spin-backend/internal/models"
	"github.com/luckywheel/spin-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure GoldenHourRepository implements the interface
var _ repositories.GoldenHourRepository = (*GoldenHourRepository)(nil)

// GoldenHourRepository handles MongoDB operations for GoldenHour
type GoldenHourRepository struct {
	collection *mongo.Collection
}

// NewGoldenHourRepository creates a new GoldenHourRepository
func NewGoldenHourRepository(db *mongo.Database) *GoldenHourRepository {
	return &GoldenHourRepository{
		collection: db.Collection("golden_hours"),
	}
}

// Create inserts a new golden hour
func (r *GoldenHourRepository) Create(ctx context.Context, goldenHour *models.GoldenHour) error {
	goldenHour.Touch(time.Now())
	res, err := r.collection.InsertOne(ctx, goldenHour)
	if err != nil {
		return err
	}
	goldenHour.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a golden hour by ID
func (r *GoldenHourRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.GoldenHour, error) {
	var goldenHour models.GoldenHour
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&goldenHour)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &goldenHour, nil
}

// FindByRewardID retrieves all golden hours of one reward
func (r *GoldenHourRepository) FindByRewardID(ctx context.Context, rewardID primitive.ObjectID) ([]*models.GoldenHour, error) {
	return r.find(ctx, bson.M{"rewardId": rewardID})
}

// FindByRewardIDs retrieves the golden hours of a set of rewards in one query
func (r *GoldenHourRepository) FindByRewardIDs(ctx context.Context, rewardIDs []primitive.ObjectID) ([]*models.GoldenHour, error) {
	if len(rewardIDs) == 0 {
		return []*models.GoldenHour{}, nil
	}
	return r.find(ctx, bson.M{"rewardId": bson.M{"$in": rewardIDs}})
}

func (r *GoldenHourRepository) find(ctx context.Context, filter bson.M) ([]*models.GoldenHour, error) {
	var goldenHours []*models.GoldenHour
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &goldenHours); err != nil {
		return nil, err
	}
	if goldenHours == nil {
		goldenHours = []*models.GoldenHour{}
	}
	return goldenHours, nil
}

// Update updates an existing golden hour
func (r *GoldenHourRepository) Update(ctx context.Context, goldenHour *models.GoldenHour) error {
	goldenHour.UpdatedAt = time.Now()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": goldenHour.ID}, goldenHour)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete deletes a golden hour by ID
func (r *GoldenHourRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// ExpireBefore marks date-bound golden hours that ended before the cutoff
func (r *GoldenHourRepository) ExpireBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	filter := bson.M{
		"status":    models.StatusActive,
		"recurring": false,
		"endTime":   bson.M{"$lte": cutoff},
	}
	update := bson.M{"$set": bson.M{"status": models.StatusExpired, "updatedAt": time.Now()}}
	res, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
